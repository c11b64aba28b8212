package bwm

import (
	"math"
	"testing"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

func tfn(v float64) fuzzy.Number {
	return fuzzy.Number{Low: v, Mid: v, High: v}
}

func threeCriteria() []decision.Criterion {
	return []decision.Criterion{
		{ID: "A", Label: "Criterion A"},
		{ID: "B", Label: "Criterion B"},
		{ID: "C", Label: "Criterion C"},
	}
}

// Consistent 3-criterion problem: A best, C worst, a_AB=2, a_AC=8, a_BC=4.
func consistentProblem() Problem {
	return Problem{
		Criteria: threeCriteria(),
		BestID:   "A",
		WorstID:  "C",
		BestVector: map[string]fuzzy.Number{
			"B": tfn(2),
			"C": tfn(8),
		},
		WorstVector: map[string]fuzzy.Number{
			"A": tfn(8),
			"B": tfn(4),
		},
	}
}

func TestSolveRoundTrip(t *testing.T) {
	res, err := Solve(consistentProblem(), Options{})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if len(res.Weights) != 3 {
		t.Fatalf("expected 3 weights, got %d", len(res.Weights))
	}
	if math.Abs(res.Weights.Sum()-1.0) > decision.WeightSumTolerance {
		t.Errorf("weights sum to %f, want 1.0", res.Weights.Sum())
	}
	if !(res.Weights["A"] >= res.Weights["B"] && res.Weights["B"] >= res.Weights["C"]) {
		t.Errorf("expected w(A) >= w(B) >= w(C), got %v", res.Weights)
	}

	// Consistent input reduces to the exact ratio solution 1/a_Bj:
	// candidates 1, 0.5, 0.125 normalized over 1.625.
	want := map[string]float64{"A": 1 / 1.625, "B": 0.5 / 1.625, "C": 0.125 / 1.625}
	for id, w := range want {
		if math.Abs(res.Weights[id]-w) > 1e-9 {
			t.Errorf("weight %s: got %f, want %f", id, res.Weights[id], w)
		}
	}

	if !res.Consistent {
		t.Errorf("expected consistent result, got ratio %f (%s)", res.ConsistencyRatio, res.Warning)
	}
	if res.ConsistencyRatio != 0 {
		t.Errorf("expected zero consistency ratio, got %f", res.ConsistencyRatio)
	}
}

func TestSolveFuzzyComparisons(t *testing.T) {
	// Genuine triangular judgments; centroids are 2, 8 and 8, 4.
	p := Problem{
		Criteria: threeCriteria(),
		BestID:   "A",
		WorstID:  "C",
		BestVector: map[string]fuzzy.Number{
			"B": {Low: 1, Mid: 2, High: 3},
			"C": {Low: 7, Mid: 8, High: 9},
		},
		WorstVector: map[string]fuzzy.Number{
			"A": {Low: 7, Mid: 8, High: 9},
			"B": {Low: 3, Mid: 4, High: 5},
		},
	}
	res, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if math.Abs(res.Weights.Sum()-1.0) > decision.WeightSumTolerance {
		t.Errorf("weights sum to %f", res.Weights.Sum())
	}
	if !(res.Weights["A"] > res.Weights["B"] && res.Weights["B"] > res.Weights["C"]) {
		t.Errorf("expected strict ordering, got %v", res.Weights)
	}
}

func TestSolveDeterminism(t *testing.T) {
	first, err := Solve(consistentProblem(), Options{})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	second, err := Solve(consistentProblem(), Options{})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for id, w := range first.Weights {
		if second.Weights[id] != w {
			t.Errorf("weight %s differs across identical invocations: %v vs %v", id, w, second.Weights[id])
		}
	}
	if first.ConsistencyRatio != second.ConsistencyRatio {
		t.Error("consistency ratio differs across identical invocations")
	}
}

func TestSolveInconsistencyWarning(t *testing.T) {
	p := consistentProblem()
	// a_AB * a_BW = 3*4 = 12 deviates from a_BW = 8 by 4; ratio 4/5.23 > 0.1.
	p.BestVector["B"] = tfn(3)

	res, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("warning must be non-fatal: %v", err)
	}
	if res.Consistent {
		t.Error("expected inconsistency flag")
	}
	if res.Warning == "" {
		t.Error("expected warning text")
	}
	if math.Abs(res.Weights.Sum()-1.0) > decision.WeightSumTolerance {
		t.Errorf("weights still must sum to 1, got %f", res.Weights.Sum())
	}
	wantRatio := 4.0 / 5.23
	if math.Abs(res.ConsistencyRatio-wantRatio) > 1e-9 {
		t.Errorf("consistency ratio: got %f, want %f", res.ConsistencyRatio, wantRatio)
	}
}

func TestSolveMissingComparison(t *testing.T) {
	p := consistentProblem()
	delete(p.WorstVector, "B")

	_, err := Solve(p, Options{})
	if err == nil {
		t.Fatal("expected error for missing comparison")
	}
	mce, ok := err.(*MissingComparisonError)
	if !ok {
		t.Fatalf("expected *MissingComparisonError, got %T: %v", err, err)
	}
	if mce.CriterionID != "B" || mce.Vector != "worst" {
		t.Errorf("wrong error detail: %+v", mce)
	}
}

func TestSolveInconsistentBestWorstPair(t *testing.T) {
	p := consistentProblem()
	p.WorstVector["A"] = tfn(6) // disagrees with BestVector["C"] = 8

	_, err := Solve(p, Options{})
	if err == nil {
		t.Fatal("expected error for disagreeing best-vs-worst entries")
	}
	if _, ok := err.(*InconsistentBestWorstError); !ok {
		t.Fatalf("expected *InconsistentBestWorstError, got %T: %v", err, err)
	}
}

func TestSolveUnknownBestOrWorst(t *testing.T) {
	p := consistentProblem()
	p.BestID = "Z"
	if _, err := Solve(p, Options{}); err == nil {
		t.Error("expected error for unknown best criterion")
	}

	p = consistentProblem()
	p.WorstID = "Z"
	if _, err := Solve(p, Options{}); err == nil {
		t.Error("expected error for unknown worst criterion")
	}
}

func TestSortedIDs(t *testing.T) {
	w := decision.WeightVector{"a": 0.2, "b": 0.5, "c": 0.2, "d": 0.1}
	got := SortedIDs(w)
	want := []string{"b", "a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}
