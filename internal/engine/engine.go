// Package engine is the facade over the weight solver, the ranker, and the
// risk scorer. It composes the two workflows and funnels their errors into a
// single surface; it adds no logic of its own.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/Themis/internal/bwm"
	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/risk"
	"github.com/MikeSquared-Agency/Themis/internal/topsis"
)

// Engine holds the configuration shared across invocations. Every call is
// pure given its inputs; the engine keeps no state between calls.
type Engine struct {
	bwmOpts      bwm.Options
	defaultBands risk.Bands
	logger       *slog.Logger
}

// Config is the engine's explicit configuration surface. Zero values fall
// back to the documented defaults.
type Config struct {
	ScaleMax             int
	ConsistencyThreshold float64
	RiskBands            risk.Bands
}

// New creates an Engine with the given configuration.
func New(cfg Config, logger *slog.Logger) *Engine {
	bands := cfg.RiskBands
	if bands == (risk.Bands{}) {
		bands = risk.DefaultBands()
	}
	return &Engine{
		bwmOpts: bwm.Options{
			ScaleMax:             cfg.ScaleMax,
			ConsistencyThreshold: cfg.ConsistencyThreshold,
		},
		defaultBands: bands,
		logger:       logger,
	}
}

// PrioritizeResult carries the derived weights, the consistency verdict, and
// the ranking.
type PrioritizeResult struct {
	Weights          decision.WeightVector `json:"weights"`
	ConsistencyRatio float64               `json:"consistency_ratio"`
	Consistent       bool                  `json:"consistent"`
	Warning          string                `json:"warning,omitempty"`
	Ranking          topsis.Ranking        `json:"ranking"`
}

// Prioritize derives criteria weights from the comparison vectors and ranks
// the alternatives with them.
func (e *Engine) Prioritize(problem bwm.Problem, alternatives []decision.Alternative, directions map[string]decision.Direction) (*PrioritizeResult, error) {
	weights, err := bwm.Solve(problem, e.bwmOpts)
	if err != nil {
		return nil, fmt.Errorf("engine: bwm: %w", err)
	}

	ranking, err := topsis.Rank(alternatives, weights.Weights, directions)
	if err != nil {
		return nil, fmt.Errorf("engine: topsis: %w", err)
	}

	if !weights.Consistent && e.logger != nil {
		e.logger.Warn("comparison judgments above consistency threshold",
			"consistency_ratio", weights.ConsistencyRatio,
			"best", problem.BestID,
			"worst", problem.WorstID,
		)
	}

	return &PrioritizeResult{
		Weights:          weights.Weights,
		ConsistencyRatio: weights.ConsistencyRatio,
		Consistent:       weights.Consistent,
		Warning:          weights.Warning,
		Ranking:          ranking,
	}, nil
}

// AssessAssetRisk scores each rating in order. A nil bands pointer selects
// the engine's configured default bands.
func (e *Engine) AssessAssetRisk(ratings []decision.AssetRating, bands *risk.Bands) ([]risk.Score, error) {
	b := e.defaultBands
	if bands != nil {
		b = *bands
	}
	scores, err := risk.ScoreAll(ratings, b)
	if err != nil {
		return nil, fmt.Errorf("engine: risk: %w", err)
	}
	return scores, nil
}
