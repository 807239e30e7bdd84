package service

import (
	"math"
	"sort"

	"github.com/basudev-labs/folio-assistant/internal/domain"
)

// DefaultTopK is the number of chunks retrieved per query unless the caller
// asks for more.
const DefaultTopK = 3

// RankedChunk pairs a chunk with its similarity score for one query.
type RankedChunk struct {
	Chunk *domain.KnowledgeChunk
	Score float64
}

// CosineSimilarity computes dot(a,b) / (||a||*||b||). A zero vector on either
// side makes the similarity undefined; it is reported as 0 so a malformed
// embedding can never win a ranking. Mismatched dimensions also score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankChunks scores every chunk against the query vector and returns the topK
// most similar, most relevant first. The sort is stable: equal-similarity
// chunks keep their original order, so results are deterministic for
// identical inputs. Fewer chunks than topK returns them all.
func RankChunks(query []float32, chunks []*domain.KnowledgeChunk, topK int) []RankedChunk {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ranked := make([]RankedChunk, len(chunks))
	for i, chunk := range chunks {
		ranked[i] = RankedChunk{
			Chunk: chunk,
			Score: CosineSimilarity(query, chunk.Embedding),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
