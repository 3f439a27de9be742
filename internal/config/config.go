package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/hybridrag/internal/core/model"
)

const (
	VectorBackendChroma   = "chroma"
	VectorBackendMemgraph = "memgraph"
)

type LLMConfig struct {
	Provider       string `toml:"provider" env:"LLM_PROVIDER"`
	Model          string `toml:"model" env:"LLM_MODEL"`
	EmbeddingModel string `toml:"embedding_model" env:"LLM_EMBEDDING_MODEL"`
	APIKey         string `toml:"api_key" env:"LLM_API_KEY"`
	BaseURL        string `toml:"base_url" env:"LLM_BASE_URL"`
	MaxTokens      int    `toml:"max_tokens" env:"LLM_MAX_TOKENS"`
}

// EmbeddingConfig selects a separate embeddings provider. When Provider is
// empty the [llm] provider embeds as well.
type EmbeddingConfig struct {
	Provider string `toml:"provider" env:"EMBEDDING_PROVIDER"`
	Model    string `toml:"model" env:"EMBEDDING_MODEL"`
	APIKey   string `toml:"api_key" env:"EMBEDDING_API_KEY"`
	BaseURL  string `toml:"base_url" env:"EMBEDDING_BASE_URL"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" env:"MEMGRAPH_URI"`
	User     string `toml:"user" env:"MEMGRAPH_USER"`
	Password string `toml:"password" env:"MEMGRAPH_PASSWORD"`
}

type ChromaConfig struct {
	URL        string `toml:"url" env:"CHROMA_URL"`
	Collection string `toml:"collection" env:"CHROMA_COLLECTION"`
}

// MemgraphVectorConfig points the vector path at a Memgraph vector index
// instead of Chroma.
type MemgraphVectorConfig struct {
	Index           string `toml:"index" env:"MEMGRAPH_VECTOR_INDEX"`
	ContentProperty string `toml:"content_property" env:"MEMGRAPH_VECTOR_CONTENT_PROPERTY"`
}

type VectorConfig struct {
	Backend  string               `toml:"backend" env:"VECTOR_BACKEND"`
	TopK     int                  `toml:"top_k" env:"VECTOR_TOP_K"`
	Chroma   ChromaConfig         `toml:"chroma"`
	Memgraph MemgraphVectorConfig `toml:"memgraph"`
}

type TranslatorConfig struct {
	Dialect string `toml:"dialect" env:"TRANSLATOR_DIALECT"`
}

type RetrievalConfig struct {
	// Examples replaces the built-in few-shot set when non-empty.
	Examples []model.Example `toml:"examples"`
}

type ConcurrencyConfig struct {
	ParallelPaths bool `toml:"parallel_paths" env:"PARALLEL_PATHS"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
}

type ServerConfig struct {
	Port string `toml:"port" env:"PORT"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Vector      VectorConfig      `toml:"vector"`
	Translator  TranslatorConfig  `toml:"translator"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Log         LogConfig         `toml:"log"`
	Server      ServerConfig      `toml:"server"`
}

// Default returns the configuration used when no file is present: a local
// Ollama, a local Memgraph and a local Chroma.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "gpt-oss:latest",
			EmbeddingModel: "nomic-embed-text",
			BaseURL:        "http://localhost:11434",
			MaxTokens:      1000,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Vector: VectorConfig{
			Backend: VectorBackendChroma,
			TopK:    5,
			Chroma: ChromaConfig{
				URL:        "http://localhost:8000",
				Collection: "documents",
			},
			Memgraph: MemgraphVectorConfig{
				Index:           "document_embedding",
				ContentProperty: "content",
			},
		},
		Translator: TranslatorConfig{
			Dialect: "Cypher",
		},
		Concurrency: ConcurrencyConfig{
			ParallelPaths: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads the TOML file at path on top of Default and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return errors.New("llm.provider is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.Embedding.Provider == "" && strings.EqualFold(c.LLM.Provider, "claude") {
		return errors.New("llm.provider 'claude' has no embeddings API: set embedding.provider")
	}
	if c.Vector.TopK <= 0 {
		return fmt.Errorf("vector.top_k must be positive, got %d", c.Vector.TopK)
	}

	switch strings.ToLower(c.Vector.Backend) {
	case VectorBackendChroma:
		if c.Vector.Chroma.Collection == "" {
			return errors.New("vector.chroma.collection is required")
		}
	case VectorBackendMemgraph:
		if c.Vector.Memgraph.Index == "" {
			return errors.New("vector.memgraph.index is required")
		}
	default:
		return fmt.Errorf("unsupported vector backend: %s", c.Vector.Backend)
	}

	for i, ex := range c.Retrieval.Examples {
		if ex.Question == "" || ex.Query == "" {
			return fmt.Errorf("retrieval.examples[%d]: question and query are required", i)
		}
	}
	return nil
}
