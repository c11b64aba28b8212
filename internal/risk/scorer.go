// Package risk scores individual assets by combining fuzzy likelihood and
// impact judgments and classifying the defuzzified result into risk levels.
package risk

import (
	"fmt"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
)

// Level is the categorical risk classification of an asset.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

func (l Level) String() string { return string(l) }

// Bands holds the crisp-score boundaries separating the four risk levels:
// [0, T1) low, [T1, T2) medium, [T2, T3) high, [T3, inf) critical.
type Bands struct {
	T1 float64 `json:"t1" yaml:"t1"`
	T2 float64 `json:"t2" yaml:"t2"`
	T3 float64 `json:"t3" yaml:"t3"`
}

// DefaultBands returns the documented default boundaries {3, 9, 18},
// calibrated for likelihood and impact rated on a 1-5 scale. Callers with a
// different rating scale must supply their own bands.
func DefaultBands() Bands {
	return Bands{T1: 3, T2: 9, T3: 18}
}

// InvalidBandsError reports band boundaries that are not strictly increasing.
type InvalidBandsError struct {
	T1, T2, T3 float64
}

func (e *InvalidBandsError) Error() string {
	return fmt.Sprintf("invalid risk bands (t1=%g, t2=%g, t3=%g): boundaries must satisfy 0 <= t1 < t2 < t3", e.T1, e.T2, e.T3)
}

// Validate checks that the boundaries are strictly increasing and non-negative.
func (b Bands) Validate() error {
	if b.T1 < 0 || b.T1 >= b.T2 || b.T2 >= b.T3 {
		return &InvalidBandsError{T1: b.T1, T2: b.T2, T3: b.T3}
	}
	return nil
}

// Classify maps a crisp score onto its level.
func (b Bands) Classify(score float64) Level {
	switch {
	case score < b.T1:
		return LevelLow
	case score < b.T2:
		return LevelMedium
	case score < b.T3:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Score is the scoring output for one asset.
type Score struct {
	AssetID string  `json:"asset_id"`
	Crisp   float64 `json:"crisp_score"`
	Level   Level   `json:"level"`
}

// ScoreAsset combines likelihood and impact componentwise, defuzzifies via
// the centroid rule, and classifies against the bands. Pure; the rating is
// not retained.
func ScoreAsset(rating decision.AssetRating, bands Bands) (Score, error) {
	if err := bands.Validate(); err != nil {
		return Score{}, err
	}
	if err := rating.Likelihood.Validate(); err != nil {
		return Score{}, fmt.Errorf("asset %q likelihood: %w", rating.AssetID, err)
	}
	if err := rating.Impact.Validate(); err != nil {
		return Score{}, fmt.Errorf("asset %q impact: %w", rating.AssetID, err)
	}

	crisp := rating.Likelihood.Mul(rating.Impact).Centroid()
	return Score{
		AssetID: rating.AssetID,
		Crisp:   crisp,
		Level:   bands.Classify(crisp),
	}, nil
}

// ScoreAll scores a batch of ratings, preserving the caller-supplied order.
// The first failing rating aborts the batch.
func ScoreAll(ratings []decision.AssetRating, bands Bands) ([]Score, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	scores := make([]Score, 0, len(ratings))
	for _, r := range ratings {
		s, err := ScoreAsset(r, bands)
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, nil
}
