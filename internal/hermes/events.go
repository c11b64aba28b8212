package hermes

import "time"

type ProjectEvent struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title,omitempty"`
}

type PrioritizedEvent struct {
	ProjectID        string             `json:"project_id"`
	EvaluationID     string             `json:"evaluation_id,omitempty"`
	Weights          map[string]float64 `json:"weights"`
	ConsistencyRatio float64            `json:"consistency_ratio"`
	Consistent       bool               `json:"consistent"`
	TopAlternative   string             `json:"top_alternative,omitempty"`
	TopCloseness     float64            `json:"top_closeness,omitempty"`
}

type RiskAssessedEvent struct {
	ProjectID    string            `json:"project_id"`
	EvaluationID string            `json:"evaluation_id,omitempty"`
	Levels       map[string]string `json:"levels"` // asset id -> level
}

type StatsEvent struct {
	Projects    int       `json:"projects"`
	Evaluations int       `json:"evaluations"`
	AvgTop      float64   `json:"avg_top_closeness"`
	MaxTop      float64   `json:"max_top_closeness"`
	Timestamp   time.Time `json:"timestamp"`
}
