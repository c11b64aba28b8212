package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Themis/internal/engine"
	"github.com/MikeSquared-Agency/Themis/internal/hermes"
	"github.com/MikeSquared-Agency/Themis/internal/store"
)

func NewRouter(s store.Store, e *engine.Engine, h hermes.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	projects := NewProjectsHandler(s, h)
	evaluate := NewEvaluateHandler(e, s, h, logger)
	admin := NewAdminHandler(s, h)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		// Stateless engine invocations: all inputs explicit per call.
		r.Post("/prioritize", evaluate.Prioritize)
		r.Post("/risk/assess", evaluate.AssessRisk)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projects.Create)
			r.Get("/", projects.List)
			r.Get("/{id}", projects.Get)
			r.Put("/{id}", projects.Update)
			r.Delete("/{id}", projects.Delete)

			r.Post("/{id}/prioritize", evaluate.PrioritizeProject)
			r.Post("/{id}/risk", evaluate.AssessProjectRisk)
			r.Get("/{id}/evaluations", evaluate.ListEvaluations)
		})

		r.Get("/evaluations/{id}", evaluate.GetEvaluation)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
