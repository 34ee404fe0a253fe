package pnl

import (
	"sync"

	"github.com/rustyeddy/tradecalc/market"
)

// Tracker is the incremental form of Calculate: fills are applied one at a
// time and the result can be read at any point. For any sequence of fills,
// Tracker.Result equals Calculate over the same sequence.
type Tracker struct {
	mu    sync.Mutex
	s     state
	fills int
}

func NewTracker(orders ...market.Order) *Tracker {
	t := &Tracker{}
	for _, o := range orders {
		t.Apply(o)
	}
	return t
}

func (t *Tracker) Apply(o market.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.apply(o)
	t.fills++
}

func (t *Tracker) Result(marketPrice float64) Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.result(marketPrice)
}

// Fills is the number of orders applied since creation or the last Reset.
func (t *Tracker) Fills() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fills
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s = state{}
	t.fills = 0
}
