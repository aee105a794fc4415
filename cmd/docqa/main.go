package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/app"
	"github.com/draphael123/notebooklm-marketing/internal/common"
	"github.com/draphael123/notebooklm-marketing/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	processOnly  = flag.Bool("process", false, "Process the document and exit")
	askQuestion  = flag.String("ask", "", "Answer a single question and exit")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("DocQA version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Shorthand port flag takes precedence
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("docqa.toml"); err == nil {
			configFiles = append(configFiles, "docqa.toml")
		} else if _, err := os.Stat("deployments/local/docqa.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/docqa.toml")
		}
	}

	// Load configuration (defaults -> files -> env -> CLI flags)
	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, finalPort, *serverHost)

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Int("port", config.Server.Port).
		Str("host", config.Server.Host).
		Msg("Application configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	if *processOnly {
		runProcess(application)
		return
	}

	if *askQuestion != "" {
		runAsk(application, *askQuestion)
		return
	}

	runServer(application)
}

// runProcess runs the document pipeline once and exits.
func runProcess(application *app.App) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	chunks, err := application.DocumentService.Process(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Document processing failed")
		os.Exit(1)
	}

	logger.Info().Int("chunks", len(chunks)).Msg("Document processed")
}

// runAsk answers one question on stdout and exits.
func runAsk(application *app.App, question string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	response, err := application.QueryService.Answer(ctx, question, "cli")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to answer question")
		os.Exit(1)
	}

	fmt.Println(response.Answer)
	if len(response.Sources) > 0 {
		fmt.Printf("\nSources: %v\n", response.Sources)
	}
}

func runServer(application *app.App) {
	// Process the document in the background when nothing is stored yet,
	// so vector retrieval has an index to work with.
	if count, err := application.ChunkStorage.CountChunks(); err == nil && count == 0 {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := application.DocumentService.Process(ctx); err != nil {
				logger.Warn().Err(err).Msg("Initial document processing failed")
			}
		}()
	}

	srv := server.New(application)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
				os.Exit(1)
			}
		}()

		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("Server failed to start")
			os.Exit(1)
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("Interrupt signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
