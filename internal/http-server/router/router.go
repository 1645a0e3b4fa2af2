package router

import (
	"net/http"

	"file-ingest/internal/http-server/handler/credential"
	"file-ingest/internal/http-server/handler/source"
	"file-ingest/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	CredentialHandler *credential.CredentialHandler
	SourceHandler     *source.SourceHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		})

		r.Post("/credentials", h.CredentialHandler.IssueCredential)
		r.Post("/sources/complete", h.SourceHandler.CompleteBatch)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
