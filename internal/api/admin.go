package api

import (
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Themis/internal/hermes"
	"github.com/MikeSquared-Agency/Themis/internal/store"
)

type AdminHandler struct {
	store  store.Store
	hermes hermes.Client
}

func NewAdminHandler(s store.Store, h hermes.Client) *AdminHandler {
	return &AdminHandler{store: s, hermes: h}
}

// Stats handles GET /api/v1/stats: the aggregate review summary. The snapshot
// is also broadcast so swarm consumers can track decision activity without
// polling the admin endpoint.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectStats, hermes.StatsEvent{
			Projects:    stats.ProjectCount,
			Evaluations: stats.EvaluationCount,
			AvgTop:      stats.AvgTopCloseness,
			MaxTop:      stats.MaxTopCloseness,
			Timestamp:   time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, stats)
}
