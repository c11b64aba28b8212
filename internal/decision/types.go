// Package decision holds the value types shared by the weight solver, the
// ranker, and the risk scorer. All types are plain values constructed by the
// caller per invocation; nothing here carries state between calls.
package decision

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

// WeightSumTolerance is the numeric slack allowed when checking that a
// weight vector sums to 1.0.
const WeightSumTolerance = 1e-6

// Criterion identifies one decision criterion within a problem.
type Criterion struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Direction states whether a criterion is benefit (higher is better) or
// cost (lower is better). The ranker requires a direction per weighted
// criterion.
type Direction string

const (
	DirectionBenefit Direction = "benefit"
	DirectionCost    Direction = "cost"
)

// WeightVector maps criterion id to a crisp non-negative weight.
type WeightVector map[string]float64

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that weights sum to 1.0 within tolerance and none are negative.
func (w WeightVector) Validate() error {
	if math.Abs(w.Sum()-1.0) > WeightSumTolerance {
		return fmt.Errorf("weights sum to %.8f, must sum to 1.0", w.Sum())
	}
	for id, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weight %f for criterion %q", v, id)
		}
	}
	return nil
}

// Alternative is one row of the fuzzy decision matrix: a candidate with a
// fuzzy rating per criterion.
type Alternative struct {
	ID      string                  `json:"id"`
	Ratings map[string]fuzzy.Number `json:"ratings"`
}

// AssetRating carries the fuzzy likelihood and impact judgments for one asset.
type AssetRating struct {
	AssetID    string       `json:"asset_id"`
	Likelihood fuzzy.Number `json:"likelihood"`
	Impact     fuzzy.Number `json:"impact"`
}
