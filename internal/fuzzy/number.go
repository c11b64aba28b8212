// Package fuzzy provides the triangular fuzzy number arithmetic used by the
// BWM weight solver, the TOPSIS ranker, and the asset risk scorer.
package fuzzy

import (
	"fmt"
	"math"
)

// Number is a triangular fuzzy number (low, mid, high) with low <= mid <= high.
// It is an immutable value; all operations return new instances.
type Number struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// InvalidNumberError reports a construction attempt that violates the
// low <= mid <= high ordering. Inputs are rejected, never reordered.
type InvalidNumberError struct {
	Low, Mid, High float64
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid fuzzy number (%g, %g, %g): components must satisfy low <= mid <= high", e.Low, e.Mid, e.High)
}

// New constructs a Number, rejecting out-of-order or non-finite components.
func New(low, mid, high float64) (Number, error) {
	n := Number{Low: low, Mid: mid, High: high}
	if err := n.Validate(); err != nil {
		return Number{}, err
	}
	return n, nil
}

// Validate re-checks the invariants on a Number that arrived through
// deserialization rather than New. NaN and infinities are rejected; they
// would otherwise slip past the ordering comparisons.
func (n Number) Validate() error {
	for _, v := range [3]float64{n.Low, n.Mid, n.High} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidNumberError{Low: n.Low, Mid: n.Mid, High: n.High}
		}
	}
	if n.Low > n.Mid || n.Mid > n.High {
		return &InvalidNumberError{Low: n.Low, Mid: n.Mid, High: n.High}
	}
	return nil
}

// Add returns the componentwise sum.
func (n Number) Add(o Number) Number {
	return Number{Low: n.Low + o.Low, Mid: n.Mid + o.Mid, High: n.High + o.High}
}

// MulScalar scales all three components by a non-negative crisp factor.
func (n Number) MulScalar(k float64) Number {
	return Number{Low: n.Low * k, Mid: n.Mid * k, High: n.High * k}
}

// Mul returns the componentwise product. Used for likelihood x impact
// risk combination.
func (n Number) Mul(o Number) Number {
	return Number{Low: n.Low * o.Low, Mid: n.Mid * o.Mid, High: n.High * o.High}
}

// Centroid defuzzifies to a crisp scalar via the centroid rule (l+m+h)/3.
// Defined for every valid Number.
func (n Number) Centroid() float64 {
	return (n.Low + n.Mid + n.High) / 3.0
}

// VertexDistance is the standard vertex-method distance between two
// triangular fuzzy numbers. It is symmetric and zero iff the numbers are equal.
func VertexDistance(a, b Number) float64 {
	dl := a.Low - b.Low
	dm := a.Mid - b.Mid
	dh := a.High - b.High
	return math.Sqrt((dl*dl + dm*dm + dh*dh) / 3.0)
}

// FromScale builds the triangular number for a crisp linguistic rating v on
// a 1..scaleMax comparison scale: (v-1, v, v+1) clamped to the scale bounds.
func FromScale(v float64, scaleMax float64) (Number, error) {
	if v < 1 || v > scaleMax {
		return Number{}, fmt.Errorf("scale value %g outside 1..%g", v, scaleMax)
	}
	return Number{
		Low:  math.Max(1, v-1),
		Mid:  v,
		High: math.Min(scaleMax, v+1),
	}, nil
}
