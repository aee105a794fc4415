package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Document    DocumentConfig   `toml:"document"`
	Chunking    ChunkingConfig   `toml:"chunking"`
	Search      SearchConfig     `toml:"search"`
	LLM         LLMConfig        `toml:"llm"`
	Claude      ClaudeConfig     `toml:"claude"`
	Gemini      GeminiConfig     `toml:"gemini"`
	Embeddings  EmbeddingsConfig `toml:"embeddings"`
	Vector      VectorConfig     `toml:"vector"`
	Cache       CacheConfig      `toml:"cache"`
	RateLimit   RateLimitConfig  `toml:"rate_limit"`
	Processing  ProcessingConfig `toml:"processing"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

// DocumentConfig controls where the reference document comes from.
// Resolution order: inline content, then URL, then local file path.
type DocumentConfig struct {
	Content string `toml:"content"` // Inline document text (highest priority)
	URL     string `toml:"url"`     // Fetch document by URL
	Path    string `toml:"path"`    // Local file path (lowest priority)

	// FetchTimeout bounds the URL fetch
	FetchTimeout time.Duration `toml:"fetch_timeout"`
}

type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size" validate:"gt=0"`     // Target chunk size in tokens
	ChunkOverlap int `toml:"chunk_overlap" validate:"gte=0"` // Overlap between chunks in characters
}

// SearchMode selects the retrieval strategy
type SearchMode string

const (
	SearchModeSimple SearchMode = "simple"
	SearchModeRAG    SearchMode = "rag"
	SearchModeHybrid SearchMode = "hybrid"
)

type SearchConfig struct {
	Mode             SearchMode `toml:"mode" validate:"oneof=simple rag hybrid"`
	MaxContextTokens int        `toml:"max_context_tokens" validate:"gt=0"`
	RetrievalLimit   int        `toml:"retrieval_limit" validate:"gt=0"`
}

// LLMProvider identifies the text-completion backend
type LLMProvider string

const (
	LLMProviderClaude LLMProvider = "claude"
	LLMProviderGemini LLMProvider = "gemini"
)

type LLMConfig struct {
	Provider          LLMProvider `toml:"provider" validate:"oneof=claude gemini"`
	MaxResponseTokens int         `toml:"max_response_tokens" validate:"gt=0"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

type EmbeddingsConfig struct {
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	Dimension      int     `toml:"dimension" validate:"gt=0"`
	MaxRetries     int     `toml:"max_retries" validate:"gte=0"`
	RequestsPerSec float64 `toml:"requests_per_sec"` // Pacing against provider quotas; 0 disables
}

// VectorBackend identifies the nearest-neighbor index backend
type VectorBackend string

const (
	VectorBackendNone   VectorBackend = "none"
	VectorBackendQdrant VectorBackend = "qdrant"
	VectorBackendLocal  VectorBackend = "local"
)

type VectorConfig struct {
	Backend VectorBackend `toml:"backend" validate:"oneof=none qdrant local"`
	Qdrant  QdrantConfig  `toml:"qdrant"`
}

type QdrantConfig struct {
	URL        string        `toml:"url"`
	APIKey     string        `toml:"api_key"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	TTL     time.Duration `toml:"ttl"`
}

type RateLimitConfig struct {
	Enabled     bool          `toml:"enabled"`
	MaxRequests int           `toml:"max_requests" validate:"gt=0"`
	Window      time.Duration `toml:"window"`
}

// ProcessingConfig controls scheduled document re-processing
type ProcessingConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Standard cron format
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig returns the baseline configuration before file, env and
// flag overrides are applied.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Document: DocumentConfig{
			Path:         "./data/source-document.txt",
			FetchTimeout: 30 * time.Second,
		},
		Chunking: ChunkingConfig{
			ChunkSize:    1000, // tokens
			ChunkOverlap: 200,  // characters
		},
		Search: SearchConfig{
			Mode:             SearchModeSimple,
			MaxContextTokens: 180000, // Leave room for prompts
			RetrievalLimit:   5,
		},
		LLM: LLMConfig{
			Provider:          LLMProviderClaude,
			MaxResponseTokens: 1024,
		},
		Claude: ClaudeConfig{
			Model:       "claude-3-5-sonnet-20241022",
			Temperature: 0.3,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.3,
		},
		Embeddings: EmbeddingsConfig{
			Model:          "text-embedding-3-small",
			Dimension:      1536,
			MaxRetries:     3,
			RequestsPerSec: 5,
		},
		Vector: VectorConfig{
			Backend: VectorBackendNone,
			Qdrant: QdrantConfig{
				URL:        "http://localhost:6333",
				Collection: "docqa-chunks",
				Timeout:    15 * time.Second,
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			MaxRequests: 100,
			Window:      time.Hour,
		},
		Processing: ProcessingConfig{
			Enabled:  false,         // User must explicitly opt-in
			Schedule: "0 */6 * * *", // Every 6 hours
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/db",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration from a single optional file.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files; environment variables
// override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCQA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server
	if port := os.Getenv("DOCQA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCQA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Document source
	if content := os.Getenv("DOCQA_DOCUMENT_CONTENT"); content != "" {
		config.Document.Content = content
	}
	if url := os.Getenv("DOCQA_DOCUMENT_URL"); url != "" {
		config.Document.URL = url
	}
	if path := os.Getenv("DOCQA_DOCUMENT_PATH"); path != "" {
		config.Document.Path = path
	}

	// Chunking
	if size := os.Getenv("DOCQA_CHUNK_SIZE"); size != "" {
		if v, err := strconv.Atoi(size); err == nil {
			config.Chunking.ChunkSize = v
		}
	}
	if overlap := os.Getenv("DOCQA_CHUNK_OVERLAP"); overlap != "" {
		if v, err := strconv.Atoi(overlap); err == nil {
			config.Chunking.ChunkOverlap = v
		}
	}

	// Search
	if mode := os.Getenv("DOCQA_SEARCH_MODE"); mode != "" {
		config.Search.Mode = SearchMode(strings.ToLower(mode))
	}
	if tokens := os.Getenv("DOCQA_MAX_CONTEXT_TOKENS"); tokens != "" {
		if v, err := strconv.Atoi(tokens); err == nil {
			config.Search.MaxContextTokens = v
		}
	}

	// Providers
	if provider := os.Getenv("DOCQA_AI_PROVIDER"); provider != "" {
		config.LLM.Provider = LLMProvider(strings.ToLower(provider))
	}
	if tokens := os.Getenv("DOCQA_MAX_RESPONSE_TOKENS"); tokens != "" {
		if v, err := strconv.Atoi(tokens); err == nil {
			config.LLM.MaxResponseTokens = v
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("DOCQA_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.Embeddings.APIKey = key
	}

	// Vector backend
	if backend := os.Getenv("DOCQA_VECTOR_BACKEND"); backend != "" {
		config.Vector.Backend = VectorBackend(strings.ToLower(backend))
	}
	if url := os.Getenv("DOCQA_QDRANT_URL"); url != "" {
		config.Vector.Qdrant.URL = url
	}
	if key := os.Getenv("DOCQA_QDRANT_API_KEY"); key != "" {
		config.Vector.Qdrant.APIKey = key
	}

	// Cache
	if enabled := os.Getenv("DOCQA_CACHE_ENABLED"); enabled != "" {
		config.Cache.Enabled = enabled != "false"
	}
	if ttl := os.Getenv("DOCQA_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.Cache.TTL = d
		} else if secs, err := strconv.Atoi(ttl); err == nil {
			config.Cache.TTL = time.Duration(secs) * time.Second
		}
	}

	// Rate limiting
	if enabled := os.Getenv("DOCQA_RATE_LIMIT_ENABLED"); enabled != "" {
		config.RateLimit.Enabled = enabled != "false"
	}
	if max := os.Getenv("DOCQA_RATE_LIMIT_MAX"); max != "" {
		if v, err := strconv.Atoi(max); err == nil {
			config.RateLimit.MaxRequests = v
		}
	}
	if window := os.Getenv("DOCQA_RATE_LIMIT_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			config.RateLimit.Window = d
		} else if secs, err := strconv.Atoi(window); err == nil {
			config.RateLimit.Window = time.Duration(secs) * time.Second
		}
	}

	// Storage
	if path := os.Getenv("DOCQA_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// Logging
	if level := os.Getenv("DOCQA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOCQA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag values. Flags have the highest priority.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}
