package orderbook

import (
	"fmt"
	"math"
	"sort"

	"github.com/rustyeddy/tradecalc/market"
)

// Book is a two sided order book snapshot. Bids are sorted highest first
// and asks lowest first.
type Book struct {
	Symbol string         `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Bids   []market.Level `json:"bids" yaml:"bids"`
	Asks   []market.Level `json:"asks" yaml:"asks"`
}

// Sort puts both sides in execution priority order.
func (b *Book) Sort() {
	sort.SliceStable(b.Bids, func(i, j int) bool { return b.Bids[i].Price > b.Bids[j].Price })
	sort.SliceStable(b.Asks, func(i, j int) bool { return b.Asks[i].Price < b.Asks[j].Price })
}

// EstimateBuy takes qty from the asks. Limit is the highest ask touched.
func (b *Book) EstimateBuy(qty float64) (Estimate, error) {
	est, err := estimate(b.Asks, qty, math.Max)
	if err != nil {
		return Estimate{}, fmt.Errorf("asks: %w", err)
	}
	return est, nil
}

// EstimateSell takes qty from the bids. Limit is the lowest bid touched,
// the worst price a sell would get.
func (b *Book) EstimateSell(qty float64) (Estimate, error) {
	est, err := estimate(b.Bids, qty, math.Min)
	if err != nil {
		return Estimate{}, fmt.Errorf("bids: %w", err)
	}
	return est, nil
}

// Estimate dispatches on side: a buy walks the asks, a sell the bids.
func (b *Book) Estimate(side market.Side, qty float64) (Estimate, error) {
	switch side {
	case market.Buy:
		return b.EstimateBuy(qty)
	case market.Sell:
		return b.EstimateSell(qty)
	}
	return Estimate{}, fmt.Errorf("%w: %v", market.ErrUnknownSide, side)
}

// Spread is best ask minus best bid; ok is false if either side is empty.
func (b *Book) Spread() (spread float64, ok bool) {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return 0, false
	}
	return b.Asks[0].Price - b.Bids[0].Price, true
}
