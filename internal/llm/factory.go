package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/hybridrag/internal/config"
)

// NewClient builds the chat and embedding clients for the configured
// provider. The embedder is nil for providers without an embeddings API.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL, cfg.MaxTokens)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
		return c, nil, nil

	case "ollama":
		baseURL := OllamaBaseURL(cfg.BaseURL)
		logrus.WithField("base_url", baseURL).Info("Initializing Ollama via OpenAI-compatible API")

		// Ollama ignores the key but the client requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}

		c := NewOpenAIClient(apiKey, cfg.Model, cfg.EmbeddingModel, baseURL, cfg.MaxTokens)
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// NewEmbedder builds an embeddings-only client for the [embedding] section.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, "", cfg.Model, cfg.BaseURL, 0), nil
	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, "", cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "ollama":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, "", cfg.Model, OllamaBaseURL(cfg.BaseURL), 0), nil
	case "claude":
		return nil, fmt.Errorf("embedding provider '%s' has no embeddings API", provider)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// NewClients builds the chat client from llmCfg and the embedder from
// embCfg, falling back to the chat provider's embedder when embCfg has no
// provider.
func NewClients(ctx context.Context, llmCfg config.LLMConfig, embCfg config.EmbeddingConfig) (LLMClient, EmbedderClient, error) {
	chat, embedder, err := NewClient(ctx, llmCfg)
	if err != nil {
		return nil, nil, err
	}
	if embCfg.Provider == "" {
		if embedder == nil {
			return nil, nil, fmt.Errorf("llm provider '%s' does not support embeddings: configure an embedding provider", llmCfg.Provider)
		}
		return chat, embedder, nil
	}

	embedder, err = NewEmbedder(ctx, embCfg)
	if err != nil {
		if closer, ok := chat.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"llm_provider":       llmCfg.Provider,
		"embedding_provider": embCfg.Provider,
	}).Info("Using separate embedding provider")
	return chat, embedder, nil
}

// OllamaBaseURL points an Ollama host at its OpenAI-compatible /v1 prefix.
func OllamaBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
}
