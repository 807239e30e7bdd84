package domain

import "fmt"

// ChunkMetadata carries provenance for a knowledge chunk.
type ChunkMetadata struct {
	// Source is the originating knowledge file name.
	Source string
	// Category is the lowercased section heading, used as a coarse topic label.
	Category string
}

// KnowledgeChunk is the atomic retrieval unit: one titled section of a
// knowledge document together with its embedding vector.
type KnowledgeChunk struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  ChunkMetadata
}

// NewKnowledgeChunk creates a KnowledgeChunk with a stable id derived from the
// source file and the section's position within it.
func NewKnowledgeChunk(source string, sectionIndex int, title, content string) *KnowledgeChunk {
	return &KnowledgeChunk{
		ID:      fmt.Sprintf("%s-%d", source, sectionIndex),
		Content: content,
		Metadata: ChunkMetadata{
			Source:   source,
			Category: title,
		},
	}
}

// ValidateKnowledgeChunk validates a KnowledgeChunk instance.
func ValidateKnowledgeChunk(c *KnowledgeChunk) error {
	if c == nil {
		return fmt.Errorf("knowledge chunk cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("knowledge chunk ID is required")
	}

	if c.Content == "" {
		return fmt.Errorf("knowledge chunk content cannot be empty")
	}

	if c.Metadata.Source == "" {
		return fmt.Errorf("knowledge chunk source is required")
	}

	return nil
}
