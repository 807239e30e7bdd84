package service

import (
	"context"
	"strings"

	"github.com/basudev-labs/folio-assistant/internal/domain"
	"github.com/basudev-labs/folio-assistant/internal/telemetry"
)

// ChunkProvider is the store surface the retrieval service depends on.
type ChunkProvider interface {
	EnsureReady(ctx context.Context) error
	Chunks() []*domain.KnowledgeChunk
}

// RetrievalService answers "what is relevant to this query": it ensures the
// store is built, embeds the query, and ranks the stored chunks against it.
// This is the single entry point for context retrieval.
type RetrievalService struct {
	store    ChunkProvider
	embedder EmbeddingClient
}

// NewRetrievalService creates a new RetrievalService instance
func NewRetrievalService(store ChunkProvider, embedder EmbeddingClient) *RetrievalService {
	return &RetrievalService{
		store:    store,
		embedder: embedder,
	}
}

// Retrieve returns the topK chunks most relevant to the query.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]RankedChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		Operation: "retrieve",
	})
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	if err := s.store.EnsureReady(ctx); err != nil {
		span.SetError(err)
		return nil, err
	}

	// The query must be embedded by the same model as the corpus before
	// ranking can start.
	queryEmbedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		err = domain.NewDomainErrorWithCause(domain.ErrCodeEmbedding, "failed to embed query", err)
		span.SetError(err)
		return nil, err
	}

	return RankChunks(queryEmbedding, s.store.Chunks(), topK), nil
}

// RetrieveContext returns the topK relevant chunk contents joined with blank
// lines, ready for prompt composition.
func (s *RetrievalService) RetrieveContext(ctx context.Context, query string, topK int) (string, error) {
	ranked, err := s.Retrieve(ctx, query, topK)
	if err != nil {
		return "", err
	}

	contents := make([]string, len(ranked))
	for i, r := range ranked {
		contents[i] = r.Chunk.Content
	}
	return strings.Join(contents, "\n\n"), nil
}
