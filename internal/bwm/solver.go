// Package bwm derives criteria weights from best/worst pairwise fuzzy
// comparison vectors using the simplified (closed-form) best-worst method.
// No linear-programming optimization is performed; see Options for the
// consistency gate applied instead.
package bwm

import (
	"fmt"
	"math"
	"sort"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

// Problem bundles all inputs needed to derive a weight vector.
type Problem struct {
	Criteria []decision.Criterion

	BestID  string
	WorstID string

	// BestVector holds a_Bj: how strongly the best criterion is preferred
	// over criterion j. WorstVector holds a_jW: how strongly criterion j is
	// preferred over the worst. Self entries (j = best in BestVector,
	// j = worst in WorstVector) are implied to be 1 and may be omitted.
	BestVector  map[string]fuzzy.Number
	WorstVector map[string]fuzzy.Number
}

// Options configures the solver.
type Options struct {
	// ScaleMax is the maximum value of the comparison scale (default 9).
	// It selects the reference entry in the consistency index table.
	ScaleMax int
	// ConsistencyThreshold is the ratio above which the result is tagged
	// with a non-fatal warning (default 0.1).
	ConsistencyThreshold float64
	// CrossCheckTolerance bounds how far the best-vs-worst entries of the
	// two vectors may disagree (default 1e-6 on defuzzified values).
	CrossCheckTolerance float64
}

func (o Options) withDefaults() Options {
	if o.ScaleMax == 0 {
		o.ScaleMax = 9
	}
	if o.ConsistencyThreshold == 0 {
		o.ConsistencyThreshold = 0.1
	}
	if o.CrossCheckTolerance == 0 {
		o.CrossCheckTolerance = 1e-6
	}
	return o
}

// Result is the solver output. Weights always sum to 1 within tolerance;
// an above-threshold consistency ratio is reported, not fatal.
type Result struct {
	Weights          decision.WeightVector `json:"weights"`
	ConsistencyRatio float64               `json:"consistency_ratio"`
	Consistent       bool                  `json:"consistent"`
	Warning          string                `json:"warning,omitempty"`
}

// MissingComparisonError reports a criterion with no entry in one of the
// two comparison vectors.
type MissingComparisonError struct {
	CriterionID string
	Vector      string // "best" or "worst"
}

func (e *MissingComparisonError) Error() string {
	return fmt.Sprintf("criterion %q has no entry in the %s comparison vector", e.CriterionID, e.Vector)
}

// InconsistentBestWorstError reports best-vs-worst entries that disagree
// between the two vectors beyond tolerance.
type InconsistentBestWorstError struct {
	FromBestVector  float64
	FromWorstVector float64
}

func (e *InconsistentBestWorstError) Error() string {
	return fmt.Sprintf("best-vs-worst comparison disagrees between vectors: %g (best vector) vs %g (worst vector)", e.FromBestVector, e.FromWorstVector)
}

// Solve derives a crisp weight vector from the problem's comparison vectors.
//
// Each fuzzy comparison is defuzzified to a crisp ratio via the centroid
// rule. The candidate weight for criterion j combines both evidence vectors:
//
//	candidate_j = sqrt(a_jW / (a_Bj * a_BW))
//
// which reduces to the exact ratio solution 1/a_Bj when the comparisons are
// multiplicatively consistent (a_Bj * a_jW = a_BW). Candidates are then
// normalized to sum to 1.
func Solve(p Problem, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	if len(p.Criteria) == 0 {
		return nil, fmt.Errorf("no criteria supplied")
	}
	ids := make(map[string]bool, len(p.Criteria))
	for _, c := range p.Criteria {
		ids[c.ID] = true
	}
	if !ids[p.BestID] {
		return nil, fmt.Errorf("best criterion %q not in criteria set", p.BestID)
	}
	if !ids[p.WorstID] {
		return nil, fmt.Errorf("worst criterion %q not in criteria set", p.WorstID)
	}

	// Cross-check: the best-vs-worst value must agree between the vectors.
	bw, ok := p.BestVector[p.WorstID]
	if !ok {
		return nil, &MissingComparisonError{CriterionID: p.WorstID, Vector: "best"}
	}
	wb, ok := p.WorstVector[p.BestID]
	if !ok {
		return nil, &MissingComparisonError{CriterionID: p.BestID, Vector: "worst"}
	}
	aBW := bw.Centroid()
	if math.Abs(aBW-wb.Centroid()) > opts.CrossCheckTolerance {
		return nil, &InconsistentBestWorstError{FromBestVector: aBW, FromWorstVector: wb.Centroid()}
	}
	if aBW <= 0 {
		return nil, fmt.Errorf("best-vs-worst comparison must be positive, got %g", aBW)
	}

	candidates := make(decision.WeightVector, len(p.Criteria))
	var sum float64
	var maxDeviation float64

	for _, c := range p.Criteria {
		aBj, err := crispComparison(p, c.ID, "best")
		if err != nil {
			return nil, err
		}
		ajW, err := crispComparison(p, c.ID, "worst")
		if err != nil {
			return nil, err
		}

		candidate := math.Sqrt(ajW / (aBj * aBW))
		candidates[c.ID] = candidate
		sum += candidate

		if d := math.Abs(aBj*ajW - aBW); d > maxDeviation {
			maxDeviation = d
		}
	}

	weights := make(decision.WeightVector, len(candidates))
	for id, c := range candidates {
		weights[id] = c / sum
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("normalized weights invalid: %w", err)
	}

	res := &Result{Weights: weights, Consistent: true}
	if ci := maxConsistency(opts.ScaleMax); ci > 0 {
		res.ConsistencyRatio = maxDeviation / ci
	}
	if res.ConsistencyRatio > opts.ConsistencyThreshold {
		res.Consistent = false
		res.Warning = fmt.Sprintf("consistency ratio %.4f exceeds threshold %.4f; weights returned but judgments should be reviewed", res.ConsistencyRatio, opts.ConsistencyThreshold)
	}
	return res, nil
}

// crispComparison returns the defuzzified entry for criterion id in the
// named vector, applying the implied self comparison of 1.
func crispComparison(p Problem, id, vector string) (float64, error) {
	var entries map[string]fuzzy.Number
	var self string
	if vector == "best" {
		entries, self = p.BestVector, p.BestID
	} else {
		entries, self = p.WorstVector, p.WorstID
	}

	if id == self {
		if n, ok := entries[id]; ok {
			return n.Centroid(), nil
		}
		return 1.0, nil
	}
	n, ok := entries[id]
	if !ok {
		return 0, &MissingComparisonError{CriterionID: id, Vector: vector}
	}
	v := n.Centroid()
	if v <= 0 {
		return 0, fmt.Errorf("comparison for criterion %q in %s vector must be positive, got %g", id, vector, v)
	}
	return v, nil
}

// SortedIDs returns the criterion ids of a weight vector ordered by
// descending weight, ties broken by id. Handy for deterministic display.
func SortedIDs(w decision.WeightVector) []string {
	ids := make([]string, 0, len(w))
	for id := range w {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if w[ids[i]] != w[ids[j]] {
			return w[ids[i]] > w[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
