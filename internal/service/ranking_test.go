package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basudev-labs/folio-assistant/internal/domain"
)

func TestCosineSimilarity_ScaleInvariance(t *testing.T) {
	a := []float32{0.2, -0.5, 0.9, 1.3}
	scaled := make([]float32, len(a))
	for i := range a {
		scaled[i] = a[i] * 7.5
	}

	assert.InDelta(t, 1.0, CosineSimilarity(a, scaled), 1e-6)
	assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-6)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	a := []float32{1, 2, 3}

	sim := CosineSimilarity(zero, a)
	assert.Equal(t, 0.0, sim)
	assert.False(t, math.IsNaN(sim))

	sim = CosineSimilarity(a, zero)
	assert.Equal(t, 0.0, sim)

	sim = CosineSimilarity(zero, zero)
	assert.Equal(t, 0.0, sim)
}

func TestCosineSimilarity_MismatchedOrEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}

	assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-6)
}

func chunkWithEmbedding(id string, embedding []float32) *domain.KnowledgeChunk {
	return &domain.KnowledgeChunk{ID: id, Content: id, Embedding: embedding}
}

func TestRankChunks_OrdersByDescendingSimilarity(t *testing.T) {
	query := []float32{1, 0}
	chunks := []*domain.KnowledgeChunk{
		chunkWithEmbedding("far", []float32{0, 1}),
		chunkWithEmbedding("near", []float32{1, 0.1}),
		chunkWithEmbedding("middle", []float32{1, 1}),
	}

	ranked := RankChunks(query, chunks, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].Chunk.ID)
	assert.Equal(t, "middle", ranked[1].Chunk.ID)
	assert.Equal(t, "far", ranked[2].Chunk.ID)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	assert.GreaterOrEqual(t, ranked[1].Score, ranked[2].Score)
}

func TestRankChunks_TopKBounds(t *testing.T) {
	query := []float32{1, 0}
	chunks := []*domain.KnowledgeChunk{
		chunkWithEmbedding("a", []float32{1, 0}),
		chunkWithEmbedding("b", []float32{0, 1}),
	}

	assert.Len(t, RankChunks(query, chunks, 1), 1)
	assert.Len(t, RankChunks(query, chunks, 2), 2)
	// Fewer chunks than topK returns them all.
	assert.Len(t, RankChunks(query, chunks, 10), 2)
	// topK <= 0 falls back to the default.
	assert.Len(t, RankChunks(query, chunks, 0), 2)
	assert.Empty(t, RankChunks(query, nil, 3))
}

func TestRankChunks_StableOnTies(t *testing.T) {
	query := []float32{1, 0}
	chunks := []*domain.KnowledgeChunk{
		chunkWithEmbedding("first", []float32{1, 0}),
		chunkWithEmbedding("second", []float32{2, 0}),
		chunkWithEmbedding("third", []float32{3, 0}),
	}

	ranked := RankChunks(query, chunks, 3)

	// All score 1.0; original order is preserved.
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Chunk.ID)
	assert.Equal(t, "second", ranked[1].Chunk.ID)
	assert.Equal(t, "third", ranked[2].Chunk.ID)
}

func TestRankChunks_ZeroEmbeddingNeverWins(t *testing.T) {
	query := []float32{1, 0}
	chunks := []*domain.KnowledgeChunk{
		chunkWithEmbedding("malformed", []float32{0, 0}),
		chunkWithEmbedding("relevant", []float32{1, 0.2}),
	}

	ranked := RankChunks(query, chunks, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "relevant", ranked[0].Chunk.ID)
	assert.Equal(t, 0.0, ranked[1].Score)
}
