package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/basudev-labs/folio-assistant/internal/api"
	"github.com/basudev-labs/folio-assistant/internal/api/handlers"
	"github.com/basudev-labs/folio-assistant/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler      *handlers.ChatHandler
	KnowledgeHandler *handlers.KnowledgeHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/chat", func(r chi.Router) {
		r.Post("/intent", cfg.ChatHandler.DetectIntent)
		r.Post("/response", cfg.ChatHandler.GenerateResponse)
	})

	r.Get("/knowledge/stats", cfg.KnowledgeHandler.Stats)

	return r
}
