package core

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/hybridrag/internal/core/dedupe"
	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/core/translation"
	"github.com/agenthands/hybridrag/internal/driver"
	"github.com/agenthands/hybridrag/internal/llm"
	"github.com/agenthands/hybridrag/internal/vectorstore"
)

// HybridRetriever answers a query from a vector index and a knowledge graph
// and returns one deduplicated document list. The vector path is required;
// the graph path is best effort.
type HybridRetriever struct {
	Embedder llm.EmbedderClient
	Vectors  vectorstore.VectorStore
	Graph    driver.GraphStore
	LLM      llm.LLMClient

	// Examples overrides the translator's built-in few-shot set when non-empty.
	Examples []model.Example
	Dialect  string
	// Parallel runs the two paths concurrently.
	Parallel bool
}

type Option func(*HybridRetriever)

func WithExamples(examples []model.Example) Option {
	return func(r *HybridRetriever) {
		r.Examples = append([]model.Example(nil), examples...)
	}
}

func WithDialect(dialect string) Option {
	return func(r *HybridRetriever) {
		r.Dialect = dialect
	}
}

func WithParallelPaths(parallel bool) Option {
	return func(r *HybridRetriever) {
		r.Parallel = parallel
	}
}

func NewHybridRetriever(embedder llm.EmbedderClient, vectors vectorstore.VectorStore, graph driver.GraphStore, llmClient llm.LLMClient, opts ...Option) *HybridRetriever {
	r := &HybridRetriever{
		Embedder: embedder,
		Vectors:  vectors,
		Graph:    graph,
		LLM:      llmClient,
		Dialect:  translation.DefaultDialect,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve runs both paths and fuses their documents, vector results first.
// Vector-path and serialization failures are returned; any other graph-path
// failure leaves only the vector results.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string) ([]model.Document, error) {
	var vectorDocs, graphDocs []model.Document

	if r.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			docs, err := r.SearchVector(gctx, query)
			vectorDocs = docs
			return err
		})
		g.Go(func() error {
			docs, err := r.graphContribution(gctx, query)
			graphDocs = docs
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if vectorDocs, err = r.SearchVector(ctx, query); err != nil {
			return nil, err
		}
		if graphDocs, err = r.graphContribution(ctx, query); err != nil {
			return nil, err
		}
	}

	results := dedupe.Fuse(vectorDocs, graphDocs)

	logrus.WithFields(logrus.Fields{
		"vector_docs": len(vectorDocs),
		"graph_docs":  len(graphDocs),
		"results":     len(results),
	}).Debug("hybrid retrieval complete")

	return results, nil
}

// SearchVector embeds query and returns the vector store's documents as-is.
func (r *HybridRetriever) SearchVector(ctx context.Context, query string) ([]model.Document, error) {
	vec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, newError(KindVectorPath, "embed", "failed to embed query", err)
	}

	docs, err := r.Vectors.SimilaritySearch(ctx, vec)
	if err != nil {
		return nil, newError(KindVectorPath, "vector_search", "similarity search failed", err)
	}
	return docs, nil
}

// SearchGraph translates query against the current schema, executes the
// statement and normalizes the rows. Errors are *RetrievalError. Without a
// graph store or a chat model there is nothing to translate or run.
func (r *HybridRetriever) SearchGraph(ctx context.Context, query string) ([]model.Document, error) {
	if r.Graph == nil || r.LLM == nil {
		return nil, nil
	}

	schema, err := r.Graph.Schema(ctx)
	if err != nil {
		return nil, newError(KindTranslation, "schema", "failed to fetch graph schema", err)
	}

	translator := translation.NewTranslator(r.LLM, schema, translation.WithDialect(r.Dialect))
	statement, err := translator.Convert(ctx, query, r.Examples)
	if err != nil {
		return nil, newError(KindTranslation, "translate", "failed to translate query", err)
	}
	if statement == "" {
		logrus.WithField("query", query).Debug("translator returned an empty statement")
		return nil, nil
	}

	result, err := r.Graph.Query(ctx, statement)
	if err != nil {
		return nil, newError(KindGraphExecution, "execute", "graph query failed", err)
	}

	return NormalizeRecords(query, result)
}

func (r *HybridRetriever) graphContribution(ctx context.Context, query string) ([]model.Document, error) {
	docs, err := r.SearchGraph(ctx, query)
	if err == nil {
		return docs, nil
	}
	if !IsFailOpen(err) {
		return nil, err
	}

	entry := logrus.WithField("query", query).WithError(err)
	var re *RetrievalError
	if errors.As(err, &re) {
		entry = entry.WithFields(logrus.Fields{"kind": re.Kind, "stage": re.Stage})
	}
	entry.Warn("graph retrieval failed, continuing with vector results")
	return nil, nil
}
