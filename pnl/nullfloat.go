package pnl

import (
	"fmt"
	"math"
	"strconv"
)

// InvalidPercent is the legacy encoding of an undefined percentage.
const InvalidPercent = -999.0

// NullFloat is a float64 that may be undefined, e.g. a percentage whose base
// was approximately zero or a break-even price before any buy.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

func Some(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Or returns the value, or def when undefined.
func (n NullFloat) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}

// OrSentinel returns the value, or InvalidPercent when undefined.
func (n NullFloat) OrSentinel() float64 {
	return n.Or(InvalidPercent)
}

func (n NullFloat) String() string {
	if !n.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	if math.IsNaN(n.Float64) || math.IsInf(n.Float64, 0) {
		return nil, fmt.Errorf("pnl: cannot encode %v as JSON", n.Float64)
	}
	return strconv.AppendFloat(nil, n.Float64, 'g', -1, 64), nil
}

func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Some(v)
	return nil
}
