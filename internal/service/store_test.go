package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves fixed documents and counts loads.
type stubSource struct {
	docs  []Document
	err   error
	loads atomic.Int64
}

func (s *stubSource) Load(ctx context.Context) ([]Document, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

// stubEmbedder returns a fixed-size vector and counts calls.
type stubEmbedder struct {
	calls atomic.Int64
	err   error
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []float32{1, 0, 0}, nil
}

func twoDocSource() *stubSource {
	return &stubSource{docs: []Document{
		{Name: "skills.md", Content: "# Skills\n\nWhat I work with.\n\n## Backend\nPython, FastAPI"},
		{Name: "contact.md", Content: "# Contact\n\nWays to reach me.\n\n## Email\nReach me at x@y.com"},
	}}
}

func TestKnowledgeStore_EnsureReady(t *testing.T) {
	source := twoDocSource()
	embedder := &stubEmbedder{}
	store := NewKnowledgeStore(source, embedder)

	assert.False(t, store.Ready())
	require.NoError(t, store.EnsureReady(context.Background()))

	assert.True(t, store.Ready())
	assert.Equal(t, 4, store.Len())
	assert.EqualValues(t, 1, source.loads.Load())
	for _, chunk := range store.Chunks() {
		assert.NotEmpty(t, chunk.Embedding)
	}
}

func TestKnowledgeStore_EnsureReady_Idempotent(t *testing.T) {
	source := twoDocSource()
	store := NewKnowledgeStore(source, &stubEmbedder{})

	require.NoError(t, store.EnsureReady(context.Background()))
	require.NoError(t, store.EnsureReady(context.Background()))

	assert.Equal(t, 4, store.Len())
	assert.EqualValues(t, 1, source.loads.Load())
}

func TestKnowledgeStore_ConcurrentFirstAccess_BuildsOnce(t *testing.T) {
	source := twoDocSource()
	embedder := &stubEmbedder{}
	store := NewKnowledgeStore(source, embedder)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.EnsureReady(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, source.loads.Load())
	assert.EqualValues(t, 4, embedder.calls.Load())
	assert.Equal(t, 4, store.Len())

	// No duplicate chunks.
	seen := make(map[string]bool)
	for _, chunk := range store.Chunks() {
		assert.False(t, seen[chunk.ID], "duplicate chunk %s", chunk.ID)
		seen[chunk.ID] = true
	}
}

func TestKnowledgeStore_Rebuild_ReplacesWholesale(t *testing.T) {
	source := twoDocSource()
	store := NewKnowledgeStore(source, &stubEmbedder{})

	require.NoError(t, store.EnsureReady(context.Background()))
	require.NoError(t, store.Rebuild(context.Background()))

	// Rebuild replaces rather than appends.
	assert.Equal(t, 4, store.Len())
	assert.EqualValues(t, 2, source.loads.Load())
}

func TestKnowledgeStore_SourceError_FailsBuild(t *testing.T) {
	source := &stubSource{err: errors.New("directory missing")}
	store := NewKnowledgeStore(source, &stubEmbedder{})

	err := store.EnsureReady(context.Background())

	require.Error(t, err)
	assert.False(t, store.Ready())
	assert.Zero(t, store.Len())
}

func TestKnowledgeStore_EmbeddingError_FailsBuild(t *testing.T) {
	source := twoDocSource()
	embedder := &stubEmbedder{err: errors.New("provider down")}
	store := NewKnowledgeStore(source, embedder)

	err := store.EnsureReady(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed chunk")
	// No partial store is visible after a failed build.
	assert.False(t, store.Ready())
	assert.Zero(t, store.Len())
}

func TestKnowledgeStore_Stats(t *testing.T) {
	store := NewKnowledgeStore(twoDocSource(), &stubEmbedder{})
	require.NoError(t, store.EnsureReady(context.Background()))

	stats := store.Stats()

	assert.Equal(t, 4, stats.Chunks)
	assert.Equal(t, []string{"contact.md", "skills.md"}, stats.Sources)
	assert.Contains(t, stats.Categories, "backend")
	assert.Contains(t, stats.Categories, "email")
}
