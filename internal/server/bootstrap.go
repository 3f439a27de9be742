package server

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/hybridrag/internal/config"
	"github.com/agenthands/hybridrag/internal/core"
	"github.com/agenthands/hybridrag/internal/driver"
	"github.com/agenthands/hybridrag/internal/llm"
	"github.com/agenthands/hybridrag/internal/vectorstore"
)

// Components holds everything a retriever built from configuration depends
// on, so it can be shut down in one place.
type Components struct {
	Retriever *core.HybridRetriever

	driver  *driver.MemgraphDriver
	closers []io.Closer
}

// NewComponents wraps an already built retriever and the resources it owns.
func NewComponents(retriever *core.HybridRetriever, closers ...io.Closer) *Components {
	return &Components{Retriever: retriever, closers: closers}
}

// Bootstrap connects to Memgraph, the vector backend and the LLM provider
// described by cfg and assembles a HybridRetriever over them.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Components, error) {
	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Memgraph: %w", err)
	}
	c := &Components{driver: d}

	vectors, err := vectorstore.New(ctx, cfg.Vector, d)
	if err != nil {
		c.closeQuietly(ctx)
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}
	if closer, ok := vectors.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}

	llmClient, embedder, err := llm.NewClients(ctx, cfg.LLM, cfg.Embedding)
	if err != nil {
		c.closeQuietly(ctx)
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	if closer, ok := llmClient.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	// a separate embedding provider owns its own client
	if closer, ok := embedder.(io.Closer); ok && interface{}(embedder) != interface{}(llmClient) {
		c.closers = append(c.closers, closer)
	}

	c.Retriever = core.NewHybridRetriever(embedder, vectors, driver.NewCypherStore(d), llmClient,
		core.WithExamples(cfg.Retrieval.Examples),
		core.WithDialect(cfg.Translator.Dialect),
		core.WithParallelPaths(cfg.Concurrency.ParallelPaths),
	)

	logrus.WithFields(logrus.Fields{
		"llm_provider":       cfg.LLM.Provider,
		"embedding_provider": cfg.Embedding.Provider,
		"vector_backend":     cfg.Vector.Backend,
		"parallel_paths":     cfg.Concurrency.ParallelPaths,
	}).Info("Retriever initialized")

	return c, nil
}

// Close releases every component and reports all failures together.
func (c *Components) Close(ctx context.Context) error {
	var result error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.driver != nil {
		if err := c.driver.Close(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close Memgraph driver: %w", err))
		}
	}
	return result
}

func (c *Components) closeQuietly(ctx context.Context) {
	if err := c.Close(ctx); err != nil {
		logrus.WithError(err).Warn("cleanup after failed bootstrap")
	}
}
