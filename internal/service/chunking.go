package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/basudev-labs/folio-assistant/internal/domain"
)

var (
	sectionBoundary = regexp.MustCompile(`\n##\s+`)
	docTitlePrefix  = regexp.MustCompile(`^#\s+`)
)

// ChunkDocument splits a knowledge document into titled section chunks.
//
// A document's first-level heading is the document title; each second-level
// heading starts a new section. Sections whose bodies are empty after trimming
// carry no retrievable signal and are dropped, but still consume a section
// index so that chunk ids stay stable for unchanged input.
func ChunkDocument(name, content string) []*domain.KnowledgeChunk {
	segments := sectionBoundary.Split(content, -1)

	sections := segments[:0]
	for _, segment := range segments {
		if strings.TrimSpace(segment) != "" {
			sections = append(sections, segment)
		}
	}

	chunks := make([]*domain.KnowledgeChunk, 0, len(sections))
	for i, section := range sections {
		title, body := splitSection(section)
		if body == "" {
			continue
		}

		chunk := domain.NewKnowledgeChunk(name, i, strings.ToLower(title), fmt.Sprintf("## %s\n%s", title, body))
		chunks = append(chunks, chunk)
	}

	return chunks
}

// splitSection separates a section's heading line from its body. The first
// segment of a document starts with the first-level title line, so the
// leading "# " is stripped there.
func splitSection(section string) (title, body string) {
	lines := strings.SplitN(section, "\n", 2)

	title = strings.TrimSpace(docTitlePrefix.ReplaceAllString(lines[0], ""))
	if len(lines) > 1 {
		body = strings.TrimSpace(lines[1])
	}
	return title, body
}
