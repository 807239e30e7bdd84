package handlers

import (
	"context"
	"net/http"

	"github.com/basudev-labs/folio-assistant/internal/api"
	"github.com/basudev-labs/folio-assistant/internal/service"
)

// KnowledgeStats is the store surface the stats endpoint depends on.
type KnowledgeStats interface {
	EnsureReady(ctx context.Context) error
	Stats() service.StoreStats
}

// KnowledgeHandler exposes read-only knowledge base introspection.
type KnowledgeHandler struct {
	store KnowledgeStats
}

func NewKnowledgeHandler(store KnowledgeStats) *KnowledgeHandler {
	return &KnowledgeHandler{store: store}
}

type StatsResponse struct {
	Chunks     int      `json:"chunks"`
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
}

// Stats handles GET /knowledge/stats. Hitting it on a cold store triggers the
// lazy build, so it doubles as a warm-up endpoint.
func (h *KnowledgeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if err := h.store.EnsureReady(r.Context()); err != nil {
		api.HandleError(w, err)
		return
	}

	stats := h.store.Stats()
	api.Success(w, http.StatusOK, StatsResponse{
		Chunks:     stats.Chunks,
		Sources:    stats.Sources,
		Categories: stats.Categories,
	})
}
