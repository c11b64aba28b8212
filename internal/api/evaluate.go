package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Themis/internal/bwm"
	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/engine"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
	"github.com/MikeSquared-Agency/Themis/internal/hermes"
	"github.com/MikeSquared-Agency/Themis/internal/risk"
	"github.com/MikeSquared-Agency/Themis/internal/store"
)

type EvaluateHandler struct {
	engine *engine.Engine
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger
}

func NewEvaluateHandler(e *engine.Engine, s store.Store, h hermes.Client, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{engine: e, store: s, hermes: h, logger: logger}
}

// Triple is the wire form of a triangular fuzzy number: [low, mid, high].
type Triple [3]float64

func (t Triple) number() (fuzzy.Number, error) {
	return fuzzy.New(t[0], t[1], t[2])
}

type AlternativeInput struct {
	ID      string            `json:"id"`
	Ratings map[string]Triple `json:"ratings"`
}

type PrioritizeRequest struct {
	Criteria     []decision.Criterion          `json:"criteria"`
	BestID       string                        `json:"best_id"`
	WorstID      string                        `json:"worst_id"`
	BestVector   map[string]Triple             `json:"best_vector"`
	WorstVector  map[string]Triple             `json:"worst_vector"`
	Directions   map[string]decision.Direction `json:"directions"`
	Alternatives []AlternativeInput            `json:"alternatives"`
}

type AssetInput struct {
	AssetID    string `json:"asset_id"`
	Likelihood Triple `json:"likelihood"`
	Impact     Triple `json:"impact"`
}

type RiskRequest struct {
	Assets []AssetInput `json:"assets"`
	Bands  *risk.Bands  `json:"bands,omitempty"`
}

// Prioritize handles POST /api/v1/prioritize: a one-shot run with every
// input supplied in the request body.
func (h *EvaluateHandler) Prioritize(w http.ResponseWriter, r *http.Request) {
	var req PrioritizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	problem, alternatives, err := req.toInputs()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.runPrioritization(problem, alternatives, req.Directions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AssessRisk handles POST /api/v1/risk/assess: a one-shot risk scoring run.
func (h *EvaluateHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ratings, err := req.toRatings()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	scores, err := h.runRiskAssessment(ratings, req.Bands)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scores": scores})
}

// PrioritizeProject handles POST /api/v1/projects/{id}/prioritize: runs the
// engine against the project's stored inputs and records the evaluation.
func (h *EvaluateHandler) PrioritizeProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	if project.Comparisons == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project has no comparison judgments"})
		return
	}
	if len(project.Alternatives) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project has no alternatives"})
		return
	}

	problem := bwm.Problem{
		Criteria:    project.Criteria,
		BestID:      project.Comparisons.BestID,
		WorstID:     project.Comparisons.WorstID,
		BestVector:  project.Comparisons.BestVector,
		WorstVector: project.Comparisons.WorstVector,
	}

	result, err := h.runPrioritization(problem, project.Alternatives, project.Directions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	eval := &store.Evaluation{
		ProjectID: project.ID,
		Kind:      store.KindPrioritization,
		Input: asMap(map[string]interface{}{
			"comparisons":  project.Comparisons,
			"directions":   project.Directions,
			"alternatives": project.Alternatives,
		}),
		Result: asMap(result),
	}
	if len(result.Ranking) > 0 {
		top := result.Ranking[0].Closeness
		eval.TopCloseness = &top
	}
	if err := h.store.CreateEvaluation(r.Context(), eval); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		event := hermes.PrioritizedEvent{
			ProjectID:        project.ID.String(),
			EvaluationID:     eval.ID.String(),
			Weights:          result.Weights,
			ConsistencyRatio: result.ConsistencyRatio,
			Consistent:       result.Consistent,
		}
		if len(result.Ranking) > 0 {
			event.TopAlternative = result.Ranking[0].AlternativeID
			event.TopCloseness = result.Ranking[0].Closeness
		}
		_ = h.hermes.Publish(hermes.SubjectPrioritized(project.ID.String()), event)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluation_id": eval.ID,
		"result":        result,
	})
}

// AssessProjectRisk handles POST /api/v1/projects/{id}/risk. The body is
// optional; it may override the classification bands.
func (h *EvaluateHandler) AssessProjectRisk(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	if len(project.Assets) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project has no asset ratings"})
		return
	}

	var req struct {
		Bands *risk.Bands `json:"bands,omitempty"`
	}
	if r.Body != nil {
		// Empty bodies are fine; only a malformed one is rejected.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	scores, err := h.runRiskAssessment(project.Assets, req.Bands)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	eval := &store.Evaluation{
		ProjectID: project.ID,
		Kind:      store.KindRiskAssessment,
		Input: asMap(map[string]interface{}{
			"assets": project.Assets,
			"bands":  req.Bands,
		}),
		Result: asMap(map[string]interface{}{"scores": scores}),
	}
	if err := h.store.CreateEvaluation(r.Context(), eval); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		levels := make(map[string]string, len(scores))
		for _, s := range scores {
			levels[s.AssetID] = string(s.Level)
		}
		_ = h.hermes.Publish(hermes.SubjectRiskAssessed(project.ID.String()), hermes.RiskAssessedEvent{
			ProjectID:    project.ID.String(),
			EvaluationID: eval.ID.String(),
			Levels:       levels,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluation_id": eval.ID,
		"scores":        scores,
	})
}

// ListEvaluations handles GET /api/v1/projects/{id}/evaluations.
func (h *EvaluateHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
		return
	}

	evals, err := h.store.ListEvaluations(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if evals == nil {
		evals = []*store.Evaluation{}
	}
	writeJSON(w, http.StatusOK, evals)
}

// GetEvaluation handles GET /api/v1/evaluations/{id}.
func (h *EvaluateHandler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid evaluation id"})
		return
	}

	eval, err := h.store.GetEvaluation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if eval == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "evaluation not found"})
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// runPrioritization invokes the engine with metrics around it. Engine errors
// are input errors: the engine is pure, so a failed run means bad judgments
// or bad ratings, never a server fault.
func (h *EvaluateHandler) runPrioritization(problem bwm.Problem, alternatives []decision.Alternative, directions map[string]decision.Direction) (*engine.PrioritizeResult, error) {
	start := time.Now()
	result, err := h.engine.Prioritize(problem, alternatives, directions)
	evaluationDuration.WithLabelValues(string(store.KindPrioritization)).Observe(time.Since(start).Seconds())

	if err != nil {
		evaluationsTotal.WithLabelValues(string(store.KindPrioritization), "error").Inc()
		return nil, err
	}
	evaluationsTotal.WithLabelValues(string(store.KindPrioritization), "ok").Inc()
	if !result.Consistent {
		consistencyWarnings.Inc()
	}
	return result, nil
}

func (h *EvaluateHandler) runRiskAssessment(ratings []decision.AssetRating, bands *risk.Bands) ([]risk.Score, error) {
	start := time.Now()
	scores, err := h.engine.AssessAssetRisk(ratings, bands)
	evaluationDuration.WithLabelValues(string(store.KindRiskAssessment)).Observe(time.Since(start).Seconds())

	if err != nil {
		evaluationsTotal.WithLabelValues(string(store.KindRiskAssessment), "error").Inc()
		return nil, err
	}
	evaluationsTotal.WithLabelValues(string(store.KindRiskAssessment), "ok").Inc()
	return scores, nil
}

func (h *EvaluateHandler) loadProject(w http.ResponseWriter, r *http.Request) (*store.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
		return nil, false
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if project == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return nil, false
	}
	return project, true
}

func (r PrioritizeRequest) toInputs() (bwm.Problem, []decision.Alternative, error) {
	problem := bwm.Problem{
		Criteria: r.Criteria,
		BestID:   r.BestID,
		WorstID:  r.WorstID,
	}

	var err error
	if problem.BestVector, err = tripleMap(r.BestVector, "best_vector"); err != nil {
		return bwm.Problem{}, nil, err
	}
	if problem.WorstVector, err = tripleMap(r.WorstVector, "worst_vector"); err != nil {
		return bwm.Problem{}, nil, err
	}

	alternatives := make([]decision.Alternative, 0, len(r.Alternatives))
	for _, a := range r.Alternatives {
		ratings, err := tripleMap(a.Ratings, fmt.Sprintf("alternative %q ratings", a.ID))
		if err != nil {
			return bwm.Problem{}, nil, err
		}
		alternatives = append(alternatives, decision.Alternative{ID: a.ID, Ratings: ratings})
	}
	return problem, alternatives, nil
}

func (r RiskRequest) toRatings() ([]decision.AssetRating, error) {
	ratings := make([]decision.AssetRating, 0, len(r.Assets))
	for _, a := range r.Assets {
		likelihood, err := a.Likelihood.number()
		if err != nil {
			return nil, fmt.Errorf("asset %q likelihood: %w", a.AssetID, err)
		}
		impact, err := a.Impact.number()
		if err != nil {
			return nil, fmt.Errorf("asset %q impact: %w", a.AssetID, err)
		}
		ratings = append(ratings, decision.AssetRating{
			AssetID:    a.AssetID,
			Likelihood: likelihood,
			Impact:     impact,
		})
	}
	return ratings, nil
}

func tripleMap(in map[string]Triple, field string) (map[string]fuzzy.Number, error) {
	out := make(map[string]fuzzy.Number, len(in))
	for id, t := range in {
		n, err := t.number()
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", field, id, err)
		}
		out[id] = n
	}
	return out, nil
}

// asMap flattens a result value into the JSONB shape the store persists.
func asMap(v interface{}) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
