package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

// EvaluationKind distinguishes the two engine workflows in the history table.
type EvaluationKind string

const (
	KindPrioritization EvaluationKind = "prioritization"
	KindRiskAssessment EvaluationKind = "risk_assessment"
)

// Organization is descriptive metadata about the organization a project
// belongs to.
type Organization struct {
	Name         string `json:"name,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
}

// Comparisons holds the BWM inputs of a project: which criterion is best,
// which is worst, and the two fuzzy comparison vectors.
type Comparisons struct {
	BestID      string                  `json:"best_id"`
	WorstID     string                  `json:"worst_id"`
	BestVector  map[string]fuzzy.Number `json:"best_vector"`
	WorstVector map[string]fuzzy.Number `json:"worst_vector"`
}

// Project is the decision document the shell persists between sessions. The
// engine never sees a Project; handlers unpack it into explicit engine inputs.
type Project struct {
	ID           uuid.UUID    `json:"project_id"`
	Title        string       `json:"title"`
	Organization Organization `json:"organization"`

	Criteria     []decision.Criterion          `json:"criteria,omitempty"`
	Comparisons  *Comparisons                  `json:"comparisons,omitempty"`
	Directions   map[string]decision.Direction `json:"directions,omitempty"`
	Alternatives []decision.Alternative        `json:"alternatives,omitempty"`
	Assets       []decision.AssetRating        `json:"assets,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectFilter struct {
	Industry string
	Limit    int
	Offset   int
}

// Evaluation is one recorded engine run against a project, kept so results
// can be re-displayed without re-invoking the engine.
type Evaluation struct {
	ID        uuid.UUID              `json:"id"`
	ProjectID uuid.UUID              `json:"project_id"`
	Kind      EvaluationKind         `json:"kind"`
	Input     map[string]interface{} `json:"input,omitempty"`
	Result    map[string]interface{} `json:"result,omitempty"`

	// TopCloseness is the winning closeness coefficient of a
	// prioritization run; nil for risk assessments.
	TopCloseness *float64 `json:"top_closeness,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Stats is the aggregate review summary over all projects and runs.
type Stats struct {
	ProjectCount    int     `json:"project_count"`
	EvaluationCount int     `json:"evaluation_count"`
	AvgTopCloseness float64 `json:"avg_top_closeness"`
	MaxTopCloseness float64 `json:"max_top_closeness"`
}

type Store interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateEvaluation(ctx context.Context, e *Evaluation) error
	GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	ListEvaluations(ctx context.Context, projectID uuid.UUID) ([]*Evaluation, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
