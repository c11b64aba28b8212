package bwm

// consistencyIndex is the reference table of maximum consistency values for
// the best-worst method, indexed by the comparison scale's maximum value.
var consistencyIndex = map[int]float64{
	1: 0.00,
	2: 0.44,
	3: 1.00,
	4: 1.63,
	5: 2.30,
	6: 3.00,
	7: 3.73,
	8: 4.47,
	9: 5.23,
}

// maxConsistency returns the table entry for the given scale maximum,
// clamping out-of-table scales to the nearest known entry.
func maxConsistency(scaleMax int) float64 {
	if scaleMax < 1 {
		scaleMax = 1
	}
	if scaleMax > 9 {
		scaleMax = 9
	}
	return consistencyIndex[scaleMax]
}
