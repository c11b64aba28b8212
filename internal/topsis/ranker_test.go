package topsis

import (
	"errors"
	"testing"

	"github.com/MikeSquared-Agency/Themis/internal/decision"
	"github.com/MikeSquared-Agency/Themis/internal/fuzzy"
)

func costQualityAlternatives() []decision.Alternative {
	return []decision.Alternative{
		{ID: "X", Ratings: map[string]fuzzy.Number{
			"cost":    {Low: 2, Mid: 3, High: 4},
			"quality": {Low: 6, Mid: 7, High: 8},
		}},
		{ID: "Y", Ratings: map[string]fuzzy.Number{
			"cost":    {Low: 5, Mid: 6, High: 7},
			"quality": {Low: 3, Mid: 4, High: 5},
		}},
	}
}

func costQualityWeights() decision.WeightVector {
	return decision.WeightVector{"cost": 0.4, "quality": 0.6}
}

func costQualityDirections() map[string]decision.Direction {
	return map[string]decision.Direction{
		"cost":    decision.DirectionCost,
		"quality": decision.DirectionBenefit,
	}
}

func TestRankCheaperAndBetterWins(t *testing.T) {
	ranking, err := Rank(costQualityAlternatives(), costQualityWeights(), costQualityDirections())
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(ranking) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranking))
	}
	if ranking[0].AlternativeID != "X" {
		t.Errorf("expected X first, got %s", ranking[0].AlternativeID)
	}
	if !(ranking[0].Closeness > ranking[1].Closeness) {
		t.Errorf("expected strict ordering, got %f vs %f", ranking[0].Closeness, ranking[1].Closeness)
	}
	for _, e := range ranking {
		if e.Closeness < 0 || e.Closeness > 1 {
			t.Errorf("closeness out of [0,1]: %s=%f", e.AlternativeID, e.Closeness)
		}
	}
}

func TestRankIdealAlternativeIsFirst(t *testing.T) {
	// "best" dominates every benefit column, so it coincides with the FPIS.
	alternatives := []decision.Alternative{
		{ID: "mid", Ratings: map[string]fuzzy.Number{
			"c1": {Low: 3, Mid: 4, High: 5},
			"c2": {Low: 2, Mid: 3, High: 4},
		}},
		{ID: "best", Ratings: map[string]fuzzy.Number{
			"c1": {Low: 7, Mid: 8, High: 9},
			"c2": {Low: 7, Mid: 8, High: 9},
		}},
		{ID: "low", Ratings: map[string]fuzzy.Number{
			"c1": {Low: 1, Mid: 2, High: 3},
			"c2": {Low: 1, Mid: 1, High: 2},
		}},
	}
	weights := decision.WeightVector{"c1": 0.5, "c2": 0.5}
	directions := map[string]decision.Direction{
		"c1": decision.DirectionBenefit,
		"c2": decision.DirectionBenefit,
	}

	ranking, err := Rank(alternatives, weights, directions)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranking[0].AlternativeID != "best" {
		t.Errorf("expected the dominating alternative first, got %s", ranking[0].AlternativeID)
	}
	for _, e := range ranking[1:] {
		if e.Closeness > ranking[0].Closeness {
			t.Errorf("%s outranks the ideal-equal alternative", e.AlternativeID)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	same := map[string]fuzzy.Number{"c1": {Low: 4, Mid: 5, High: 6}}
	alternatives := []decision.Alternative{
		{ID: "second", Ratings: map[string]fuzzy.Number{"c1": {Low: 1, Mid: 2, High: 3}}},
		{ID: "tie-a", Ratings: same},
		{ID: "tie-b", Ratings: same},
	}
	weights := decision.WeightVector{"c1": 1.0}
	directions := map[string]decision.Direction{"c1": decision.DirectionBenefit}

	ranking, err := Rank(alternatives, weights, directions)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranking[0].AlternativeID != "tie-a" || ranking[1].AlternativeID != "tie-b" {
		t.Errorf("ties must keep input order, got %v", ranking)
	}
	if ranking[0].Closeness != ranking[1].Closeness {
		t.Errorf("identical alternatives must tie, got %f vs %f", ranking[0].Closeness, ranking[1].Closeness)
	}
}

func TestRankDegenerateSingleAlternative(t *testing.T) {
	// One alternative equals both ideals on every criterion: closeness is
	// defined as 0, not an error.
	alternatives := []decision.Alternative{
		{ID: "only", Ratings: map[string]fuzzy.Number{"c1": {Low: 1, Mid: 2, High: 3}}},
	}
	ranking, err := Rank(alternatives, decision.WeightVector{"c1": 1.0}, map[string]decision.Direction{"c1": decision.DirectionBenefit})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranking[0].Closeness != 0 {
		t.Errorf("degenerate closeness: got %f, want 0", ranking[0].Closeness)
	}
}

func TestRankEmptyAlternatives(t *testing.T) {
	_, err := Rank(nil, costQualityWeights(), costQualityDirections())
	if !errors.Is(err, ErrNoAlternatives) {
		t.Errorf("expected ErrNoAlternatives, got %v", err)
	}
}

func TestRankUnknownDirection(t *testing.T) {
	directions := costQualityDirections()
	delete(directions, "quality")

	_, err := Rank(costQualityAlternatives(), costQualityWeights(), directions)
	var ude *UnknownDirectionError
	if !errors.As(err, &ude) {
		t.Fatalf("expected *UnknownDirectionError, got %T: %v", err, err)
	}
	if ude.CriterionID != "quality" {
		t.Errorf("wrong criterion in error: %q", ude.CriterionID)
	}
}

func TestRankCoverageMismatch(t *testing.T) {
	alternatives := costQualityAlternatives()
	delete(alternatives[1].Ratings, "cost")

	ranking, err := Rank(alternatives, costQualityWeights(), costQualityDirections())
	var ce *CoverageError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CoverageError, got %T: %v", err, err)
	}
	if ce.AlternativeID != "Y" || ce.CriterionID != "cost" {
		t.Errorf("wrong error detail: %+v", ce)
	}
	if ranking != nil {
		t.Error("no partial ranking may be returned on coverage mismatch")
	}
}

func TestRankNonPositiveCostRating(t *testing.T) {
	alternatives := costQualityAlternatives()
	alternatives[0].Ratings["cost"] = fuzzy.Number{Low: 0, Mid: 1, High: 2}

	_, err := Rank(alternatives, costQualityWeights(), costQualityDirections())
	var npe *NonPositiveRatingError
	if !errors.As(err, &npe) {
		t.Fatalf("expected *NonPositiveRatingError, got %T: %v", err, err)
	}
}

func TestRankRejectsMalformedRating(t *testing.T) {
	alternatives := costQualityAlternatives()
	alternatives[0].Ratings["quality"] = fuzzy.Number{Low: 9, Mid: 7, High: 8}

	_, err := Rank(alternatives, costQualityWeights(), costQualityDirections())
	var ine *fuzzy.InvalidNumberError
	if !errors.As(err, &ine) {
		t.Fatalf("expected *fuzzy.InvalidNumberError, got %T: %v", err, err)
	}
}

func TestRankDeterminism(t *testing.T) {
	first, err := Rank(costQualityAlternatives(), costQualityWeights(), costQualityDirections())
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	second, err := Rank(costQualityAlternatives(), costQualityWeights(), costQualityDirections())
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs across identical invocations: %+v vs %+v", i, first[i], second[i])
		}
	}
}
