package market

import "math"

// Tolerance is the absolute tolerance used for "approximately zero" checks
// on quantities. Quantities usually arrive after commission deductions and
// carry small float residues.
const Tolerance = 1e-9

func ApproxZero(x float64) bool {
	return math.Abs(x) <= Tolerance
}

func ApproxEqual(a, b float64) bool {
	return ApproxZero(a - b)
}

// Finite reports whether x is neither NaN nor an infinity.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
