package market

// Order is one executed fill as seen by the PnL engine.
//
// Value is the cash exchanged in quote currency (price * qty) and Qty is
// the base asset quantity. Qty is expected to be >= 0; nothing here
// validates it.
type Order struct {
	Side  Side    `json:"side" yaml:"side"`
	Value float64 `json:"value" yaml:"value"`
	Qty   float64 `json:"qty" yaml:"qty"`
}

func NewBuy(value, qty float64) Order {
	return Order{Side: Buy, Value: value, Qty: qty}
}

func NewSell(value, qty float64) Order {
	return Order{Side: Sell, Value: value, Qty: qty}
}

// FromFill builds an Order from an execution price and quantity.
func FromFill(side Side, price, qty float64) Order {
	return Order{Side: side, Value: price * qty, Qty: qty}
}

// Price is the effective execution rate of the fill, 0 for an empty fill.
func (o Order) Price() float64 {
	if ApproxZero(o.Qty) {
		return 0
	}
	return o.Value / o.Qty
}
