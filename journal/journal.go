// journal/journal.go
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/tradecalc/market"
)

var ErrFillNotFound = errors.New("fill not found")

// Fill is one executed trade as persisted in the journal.
type Fill struct {
	FillID string      `json:"fill_id"`
	Date   time.Time   `json:"date"`
	Symbol string      `json:"symbol"`
	Side   market.Side `json:"side"`
	Qty    float64     `json:"qty"`
	Price  float64     `json:"price"`
}

// Order converts the fill into the PnL engine's input.
func (f Fill) Order() market.Order {
	return market.FromFill(f.Side, f.Price, f.Qty)
}

// Orders converts fills, keeping their order.
func Orders(fills []Fill) []market.Order {
	out := make([]market.Order, len(fills))
	for i, f := range fills {
		out[i] = f.Order()
	}
	return out
}

// FillLister is the read side PnL consumers need: fills of one symbol in
// execution order.
type FillLister interface {
	ListFills(ctx context.Context, symbol string) ([]Fill, error)
}
