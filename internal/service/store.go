package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/basudev-labs/folio-assistant/internal/domain"
	"github.com/basudev-labs/folio-assistant/internal/telemetry"
)

// DefaultEmbedConcurrency bounds concurrent embedding calls during a build,
// keeping the provider's rate limits in mind.
const DefaultEmbedConcurrency = 4

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeStore holds the embedded knowledge chunks for the lifetime of the
// process. The store is built lazily on first access; concurrent first readers
// share a single build via a single-flight guard. A rebuild replaces the whole
// chunk set atomically, so readers never observe a partial store.
type KnowledgeStore struct {
	source      DocumentSource
	embedder    EmbeddingClient
	concurrency int

	mu     sync.RWMutex
	chunks []*domain.KnowledgeChunk
	ready  bool

	build singleflight.Group
}

// NewKnowledgeStore creates a KnowledgeStore over the given source and embedder.
func NewKnowledgeStore(source DocumentSource, embedder EmbeddingClient) *KnowledgeStore {
	return NewKnowledgeStoreWithConcurrency(source, embedder, DefaultEmbedConcurrency)
}

// NewKnowledgeStoreWithConcurrency creates a KnowledgeStore with an explicit
// bound on concurrent embedding calls during builds.
func NewKnowledgeStoreWithConcurrency(source DocumentSource, embedder EmbeddingClient, concurrency int) *KnowledgeStore {
	if concurrency <= 0 {
		concurrency = DefaultEmbedConcurrency
	}
	return &KnowledgeStore{
		source:      source,
		embedder:    embedder,
		concurrency: concurrency,
	}
}

// EnsureReady builds the store on first use. Callers that arrive while a build
// is in flight await that build and share its outcome.
func (s *KnowledgeStore) EnsureReady(ctx context.Context) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := s.build.Do("build", func() (interface{}, error) {
		s.mu.RLock()
		ready := s.ready
		s.mu.RUnlock()
		if ready {
			return nil, nil
		}
		return nil, s.rebuild(ctx)
	})
	return err
}

// Rebuild discards the current chunk set and ingests the source again.
// Rebuilding is idempotent: running it twice on unchanged input yields the
// same (id, content) multiset.
func (s *KnowledgeStore) Rebuild(ctx context.Context) error {
	_, err, _ := s.build.Do("build", func() (interface{}, error) {
		return nil, s.rebuild(ctx)
	})
	return err
}

func (s *KnowledgeStore) rebuild(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeStore.Rebuild", telemetry.SpanAttributes{
		Operation: "rebuild",
	})
	defer span.End()

	docs, err := s.source.Load(ctx)
	if err != nil {
		span.SetError(err)
		return err
	}

	var chunks []*domain.KnowledgeChunk
	for _, doc := range docs {
		chunks = append(chunks, ChunkDocument(doc.Name, doc.Content)...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, chunk := range chunks {
		g.Go(func() error {
			embedding, err := s.embedder.GenerateEmbedding(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %s: %w", chunk.ID, err)
			}
			chunk.Embedding = embedding
			return nil
		})
	}
	// Any embedding failure fails the whole build; a store with silently
	// missing vectors would poison rankings.
	if err := g.Wait(); err != nil {
		span.SetError(err)
		return err
	}

	s.mu.Lock()
	s.chunks = chunks
	s.ready = true
	s.mu.Unlock()

	log.Printf("knowledge base initialized with %d chunks", len(chunks))
	return nil
}

// Ready reports whether the store has been built.
func (s *KnowledgeStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Chunks returns a snapshot of the current chunk set.
func (s *KnowledgeStore) Chunks() []*domain.KnowledgeChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*domain.KnowledgeChunk, len(s.chunks))
	copy(snapshot, s.chunks)
	return snapshot
}

// Len returns the number of chunks currently held.
func (s *KnowledgeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Stats summarizes the built store for the stats endpoint.
type StoreStats struct {
	Chunks     int
	Sources    []string
	Categories []string
}

// Stats returns distinct sources and categories in sorted order.
func (s *KnowledgeStore) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sourceSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})
	for _, chunk := range s.chunks {
		sourceSet[chunk.Metadata.Source] = struct{}{}
		categorySet[chunk.Metadata.Category] = struct{}{}
	}

	stats := StoreStats{
		Chunks:     len(s.chunks),
		Sources:    make([]string, 0, len(sourceSet)),
		Categories: make([]string, 0, len(categorySet)),
	}
	for source := range sourceSet {
		stats.Sources = append(stats.Sources, source)
	}
	for category := range categorySet {
		stats.Categories = append(stats.Categories, category)
	}
	sort.Strings(stats.Sources)
	sort.Strings(stats.Categories)
	return stats
}
