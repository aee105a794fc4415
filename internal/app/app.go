package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/handlers"
	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/services/analytics"
	"github.com/draphael123/notebooklm-marketing/internal/services/cache"
	"github.com/draphael123/notebooklm-marketing/internal/services/documents"
	"github.com/draphael123/notebooklm-marketing/internal/services/embeddings"
	"github.com/draphael123/notebooklm-marketing/internal/services/intent"
	"github.com/draphael123/notebooklm-marketing/internal/services/llm"
	"github.com/draphael123/notebooklm-marketing/internal/services/query"
	"github.com/draphael123/notebooklm-marketing/internal/services/ratelimit"
	"github.com/draphael123/notebooklm-marketing/internal/services/retrieval"
	"github.com/draphael123/notebooklm-marketing/internal/services/vector"
	"github.com/draphael123/notebooklm-marketing/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB              *badger.BadgerDB
	ChunkStorage    interfaces.ChunkStorage
	QueryLogStorage interfaces.QueryLogStorage

	// Document pipeline
	DocumentService  interfaces.DocumentService
	EmbeddingService interfaces.EmbeddingService
	VectorStore      interfaces.VectorStore
	Scheduler        *documents.Scheduler

	// Question answering
	LLMService       interfaces.LLMService
	Retriever        interfaces.Retriever
	QueryService     *query.Service
	ResponseCache    *cache.ResponseCache
	RateLimiter      *ratelimit.Limiter
	AnalyticsService interfaces.AnalyticsService

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	AskHandler       *handlers.AskHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	DocumentHandler  *handlers.DocumentHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Processing.Enabled {
		app.Scheduler = documents.NewScheduler(app.DocumentService, logger)
		if err := app.Scheduler.Start(cfg.Processing.Schedule); err != nil {
			return nil, fmt.Errorf("failed to start processing scheduler: %w", err)
		}
	}

	logger.Info().
		Str("llm_provider", string(cfg.LLM.Provider)).
		Str("search_mode", string(cfg.Search.Mode)).
		Bool("scheduler_enabled", cfg.Processing.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initStorage() error {
	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}
	a.DB = db

	a.ChunkStorage = badger.NewChunkStorage(db, a.Logger)
	a.QueryLogStorage = badger.NewQueryLogStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order:
// embeddings and vector store feed the document service, the document
// service feeds the retriever, and the retriever feeds the query
// orchestrator.
func (a *App) initServices() error {
	a.EmbeddingService = embeddings.NewService(&a.Config.Embeddings, a.Logger)

	vectorStore, err := vector.NewVectorStore(&a.Config.Vector, a.DB, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	a.VectorStore = vectorStore

	a.DocumentService = documents.NewService(
		a.Config,
		a.ChunkStorage,
		a.EmbeddingService,
		a.VectorStore,
		a.Logger,
	)

	llmService, err := llm.NewLLMService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM service: %w", err)
	}
	a.LLMService = llmService

	a.Retriever = retrieval.NewService(
		&a.Config.Search,
		a.DocumentService,
		a.EmbeddingService,
		a.VectorStore,
		a.Logger,
	)

	a.ResponseCache = cache.NewResponseCache(&a.Config.Cache, a.Logger)
	a.RateLimiter = ratelimit.NewLimiter(&a.Config.RateLimit, a.Logger)
	a.AnalyticsService = analytics.NewService(a.QueryLogStorage, a.Logger)

	a.QueryService = query.NewService(
		a.Config,
		intent.NewClassifier(a.LLMService, a.Logger),
		a.Retriever,
		a.LLMService,
		a.ResponseCache,
		a.AnalyticsService,
		a.Logger,
	)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService.Provider())
	a.AskHandler = handlers.NewAskHandler(a.QueryService, a.RateLimiter, a.Logger)
	a.AnalyticsHandler = handlers.NewAnalyticsHandler(a.AnalyticsService, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.DocumentService, a.ChunkStorage, a.Logger)
}

// Close shuts down components in reverse dependency order
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
		a.Logger.Info().Msg("Processing scheduler stopped")
	}

	if a.AnalyticsService != nil {
		if err := a.AnalyticsService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close analytics service")
		}
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		} else {
			a.Logger.Info().Msg("LLM service closed")
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
