// Package topsis ranks alternatives by closeness to the fuzzy positive ideal
// solution and farness from the fuzzy negative ideal solution.
package topsis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

// Entry pairs an alternative with its closeness coefficient in [0, 1].
type Entry struct {
	AlternativeID string  `json:"alternative_id"`
	Closeness     float64 `json:"closeness"`
}

// Ranking is ordered descending by closeness. Equal coefficients keep the
// caller's input order (stable sort).
type Ranking []Entry

// ErrNoAlternatives is returned when the alternative set is empty.
var ErrNoAlternatives = errors.New("no alternatives supplied")

// UnknownDirectionError reports a weighted criterion with no declared
// benefit/cost direction.
type UnknownDirectionError struct {
	CriterionID string
}

func (e *UnknownDirectionError) Error() string {
	return fmt.Sprintf("criterion %q has no declared benefit/cost direction", e.CriterionID)
}

// CoverageError reports an alternative missing a rating for a weighted
// criterion. Ranking fails as a whole; no partial result is produced.
type CoverageError struct {
	AlternativeID string
	CriterionID   string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("alternative %q has no rating for criterion %q", e.AlternativeID, e.CriterionID)
}

// NonPositiveRatingError reports a cost-direction rating with a component at
// or below zero, where the inversion used by cost normalization is undefined.
type NonPositiveRatingError struct {
	AlternativeID string
	CriterionID   string
}

func (e *NonPositiveRatingError) Error() string {
	return fmt.Sprintf("alternative %q rating for cost criterion %q must have strictly positive components", e.AlternativeID, e.CriterionID)
}

// Rank builds the fuzzy decision matrix from the alternatives, normalizes it
// per criterion direction, weights it, and orders alternatives by closeness
// coefficient C = dNeg / (dPos + dNeg). An alternative equal to both ideals
// on every criterion gets C = 0 by definition (degenerate case, not an error).
func Rank(alternatives []decision.Alternative, weights decision.WeightVector, directions map[string]decision.Direction) (Ranking, error) {
	if len(alternatives) == 0 {
		return nil, ErrNoAlternatives
	}

	// Deterministic criterion order regardless of map iteration.
	criteria := make([]string, 0, len(weights))
	for id := range weights {
		criteria = append(criteria, id)
	}
	sort.Strings(criteria)

	// Eager boundary validation: directions, coverage, rating shape.
	for _, id := range criteria {
		dir, ok := directions[id]
		if !ok || (dir != decision.DirectionBenefit && dir != decision.DirectionCost) {
			return nil, &UnknownDirectionError{CriterionID: id}
		}
		for _, alt := range alternatives {
			r, ok := alt.Ratings[id]
			if !ok {
				return nil, &CoverageError{AlternativeID: alt.ID, CriterionID: id}
			}
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("alternative %q, criterion %q: %w", alt.ID, id, err)
			}
			if dir == decision.DirectionCost && r.Low <= 0 {
				return nil, &NonPositiveRatingError{AlternativeID: alt.ID, CriterionID: id}
			}
		}
	}

	// Normalize and weight, column by column.
	weighted := make([]map[string]fuzzy.Number, len(alternatives))
	for i := range weighted {
		weighted[i] = make(map[string]fuzzy.Number, len(criteria))
	}
	for _, id := range criteria {
		column := normalizeColumn(alternatives, id, directions[id])
		w := weights[id]
		for i, n := range column {
			weighted[i][id] = n.MulScalar(w)
		}
	}

	// Componentwise ideal solutions per criterion.
	fpis := make(map[string]fuzzy.Number, len(criteria))
	fnis := make(map[string]fuzzy.Number, len(criteria))
	for _, id := range criteria {
		pos := weighted[0][id]
		neg := weighted[0][id]
		for i := 1; i < len(weighted); i++ {
			n := weighted[i][id]
			pos = fuzzy.Number{Low: math.Max(pos.Low, n.Low), Mid: math.Max(pos.Mid, n.Mid), High: math.Max(pos.High, n.High)}
			neg = fuzzy.Number{Low: math.Min(neg.Low, n.Low), Mid: math.Min(neg.Mid, n.Mid), High: math.Min(neg.High, n.High)}
		}
		fpis[id] = pos
		fnis[id] = neg
	}

	ranking := make(Ranking, len(alternatives))
	for i, alt := range alternatives {
		var dPos, dNeg float64
		for _, id := range criteria {
			dPos += fuzzy.VertexDistance(weighted[i][id], fpis[id])
			dNeg += fuzzy.VertexDistance(weighted[i][id], fnis[id])
		}
		closeness := 0.0
		if dPos+dNeg > 0 {
			closeness = dNeg / (dPos + dNeg)
		}
		ranking[i] = Entry{AlternativeID: alt.ID, Closeness: closeness}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Closeness > ranking[j].Closeness
	})
	return ranking, nil
}

// normalizeColumn applies fuzzy linear normalization to one criterion column.
// Benefit: divide every component by the column's maximum high. Cost: invert
// against the column's minimum low, (minLow/h, minLow/m, minLow/l).
func normalizeColumn(alternatives []decision.Alternative, criterionID string, dir decision.Direction) []fuzzy.Number {
	out := make([]fuzzy.Number, len(alternatives))

	if dir == decision.DirectionBenefit {
		var maxHigh float64
		for _, alt := range alternatives {
			if h := alt.Ratings[criterionID].High; h > maxHigh {
				maxHigh = h
			}
		}
		for i, alt := range alternatives {
			r := alt.Ratings[criterionID]
			if maxHigh == 0 {
				out[i] = fuzzy.Number{}
				continue
			}
			out[i] = r.MulScalar(1 / maxHigh)
		}
		return out
	}

	minLow := alternatives[0].Ratings[criterionID].Low
	for _, alt := range alternatives[1:] {
		if l := alt.Ratings[criterionID].Low; l < minLow {
			minLow = l
		}
	}
	for i, alt := range alternatives {
		r := alt.Ratings[criterionID]
		out[i] = fuzzy.Number{Low: minLow / r.High, Mid: minLow / r.Mid, High: minLow / r.Low}
	}
	return out
}
