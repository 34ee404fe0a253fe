package orderbook

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/tradecalc/market"
)

var (
	ErrEmptyBook       = errors.New("order book is empty")
	ErrInvalidQuantity = errors.New("quantity must be a finite, non-negative number")
	ErrNoLiquidity     = errors.New("order book has no size at any level")
	ErrNotFinite       = errors.New("estimate is not a finite number")
)

// Estimate is the expected outcome of taking qty from one side of a book.
type Estimate struct {
	Average float64 `json:"average"`
	Limit   float64 `json:"limit"`
	Filled  float64 `json:"filled"`
	// Partial is set when the book ran out before the requested qty.
	Partial bool `json:"partial"`
}

type fill struct {
	price, size float64
}

// consume walks levels in order taking min(size, remaining) from each and
// stops once the remaining qty is approximately zero.
func consume(levels []market.Level, qty float64) (fills []fill, remaining float64) {
	remaining = qty
	for _, l := range levels {
		if market.ApproxZero(remaining) {
			break
		}
		take := min(l.Size, remaining)
		fills = append(fills, fill{l.Price, take})
		remaining -= take
	}
	return fills, remaining
}

func average(fills []fill) (avg, filled float64) {
	var notional float64
	for _, f := range fills {
		notional += f.price * f.size
		filled += f.size
	}
	return notional / filled, filled
}

// EstimateFillPrice returns the volume weighted average price of taking qty
// from levels (best price first) and the highest price touched.
//
// A zero qty costs the best price. If the book holds less than qty the
// estimate covers only what is there and Partial is set. NaN and infinite
// quantities are rejected with ErrInvalidQuantity.
func EstimateFillPrice(levels []market.Level, qty float64) (Estimate, error) {
	return estimate(levels, qty, math.Max)
}

func estimate(levels []market.Level, qty float64, worse func(a, b float64) float64) (Estimate, error) {
	if len(levels) == 0 {
		return Estimate{}, ErrEmptyBook
	}
	if !market.Finite(qty) || (qty < 0 && !market.ApproxZero(qty)) {
		return Estimate{}, fmt.Errorf("%w: %g", ErrInvalidQuantity, qty)
	}
	if market.ApproxZero(qty) {
		best := levels[0].Price
		return Estimate{Average: best, Limit: best}, nil
	}

	fills, remaining := consume(levels, qty)
	avg, filled := average(fills)
	if market.ApproxZero(filled) {
		return Estimate{}, ErrNoLiquidity
	}

	limit := fills[0].price
	for _, f := range fills[1:] {
		limit = worse(limit, f.price)
	}

	if !market.Finite(avg) {
		return Estimate{}, fmt.Errorf("%w: average %g", ErrNotFinite, avg)
	}

	return Estimate{
		Average: avg,
		Limit:   limit,
		Filled:  filled,
		Partial: !market.ApproxZero(remaining),
	}, nil
}
