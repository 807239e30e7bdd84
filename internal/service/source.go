package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/basudev-labs/folio-assistant/internal/domain"
)

// Document is one raw knowledge file before chunking.
type Document struct {
	Name    string
	Content string
}

// DocumentSource yields the knowledge documents to ingest. Sources must return
// documents in a deterministic order so that rebuilds on unchanged input
// produce identical chunk ids.
type DocumentSource interface {
	Load(ctx context.Context) ([]Document, error)
}

// DirSource reads markdown documents from a local directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource for the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Load reads every markdown file in the directory. A missing or unreadable
// directory is an ingestion failure; there is no partial knowledge base.
func (s *DirSource) Load(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeIngestion, "failed to read knowledge directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeIngestion, "failed to read knowledge file "+name, err)
		}
		docs = append(docs, Document{Name: name, Content: string(content)})
	}

	return docs, nil
}
