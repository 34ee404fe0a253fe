package pnl

import (
	"github.com/rustyeddy/tradecalc/market"
)

// minBase is the smallest cost basis a percentage is computed against.
const minBase = 1e-5

// Result is the PnL of a fill history at a given market price.
type Result struct {
	RealizedPnL          float64   `json:"realized_pnl"`
	RealizedPnLPercent   NullFloat `json:"realized_pnl_percent"`
	BreakEvenPrice       NullFloat `json:"break_even_price"`
	UnrealizedSellValue  float64   `json:"unrealized_sell_value"`
	UnrealizedPnL        float64   `json:"unrealized_pnl"`
	UnrealizedPnLPercent NullFloat `json:"unrealized_pnl_percent"`
	PositionQty          float64   `json:"position_qty"`
}

// Finite reports whether every defined field of r is a finite number.
func (r Result) Finite() bool {
	for _, v := range []float64{r.RealizedPnL, r.UnrealizedSellValue, r.UnrealizedPnL, r.PositionQty} {
		if !market.Finite(v) {
			return false
		}
	}
	for _, n := range []NullFloat{r.RealizedPnLPercent, r.BreakEvenPrice, r.UnrealizedPnLPercent} {
		if n.Valid && !market.Finite(n.Float64) {
			return false
		}
	}
	return true
}

// state is the running weighted-average cost basis of a position.
type state struct {
	positionQty        float64
	avgBuyRate         NullFloat
	cumInitialBuyValue float64
	cumSellValue       float64
}

func (s *state) apply(o market.Order) {
	switch o.Side {
	case market.Buy:
		total := s.positionQty + o.Qty
		switch {
		case !s.avgBuyRate.Valid:
			// first priced buy sets the rate, however small its qty
			if o.Qty != 0 {
				s.avgBuyRate = Some(o.Value / o.Qty)
			}
		case !market.ApproxZero(total):
			s.avgBuyRate = Some((s.avgBuyRate.Float64*s.positionQty + o.Value) / total)
		}
		s.positionQty = total

	case market.Sell:
		// The rate is not touched on a sell: it stays the cost basis of
		// whatever remains open.
		s.cumInitialBuyValue += o.Qty * s.avgBuyRate.Or(0)
		s.cumSellValue += o.Value
		s.positionQty -= o.Qty
	}
}

func (s *state) result(marketPrice float64) Result {
	r := Result{
		BreakEvenPrice: s.avgBuyRate,
		PositionQty:    s.positionQty,
	}

	r.UnrealizedSellValue = s.positionQty * marketPrice
	avgBuyValue := s.positionQty * s.avgBuyRate.Or(0)
	r.UnrealizedPnL = r.UnrealizedSellValue - avgBuyValue
	if avgBuyValue > minBase {
		r.UnrealizedPnLPercent = Some(r.UnrealizedPnL / avgBuyValue * 100)
	}

	r.RealizedPnL = s.cumSellValue - s.cumInitialBuyValue
	if s.cumInitialBuyValue > minBase {
		r.RealizedPnLPercent = Some(r.RealizedPnL / s.cumInitialBuyValue * 100)
	}
	return r
}

// Calculate folds orders, in the order given, into a weighted-average cost
// basis and reports realized and unrealized PnL at marketPrice.
//
// Orders must be chronological; they are not sorted. A sell larger than the
// open position is accepted and leaves a negative PositionQty. A sell before
// any buy is booked against a zero cost basis.
//
// The first buy with a non-zero qty sets the rate to value/qty. Later buys
// blend into it unless they bring the position back to approximately zero,
// in which case the previous rate is kept. A zero-qty buy never sets a rate.
// Huge values over tiny quantities can overflow; see Result.Finite.
func Calculate(orders []market.Order, marketPrice float64) Result {
	var s state
	for _, o := range orders {
		s.apply(o)
	}
	return s.result(marketPrice)
}
