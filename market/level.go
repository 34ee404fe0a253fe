package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Level is one price tier of an order book side.
type Level struct {
	Price float64 `json:"price" yaml:"price"`
	Size  float64 `json:"size" yaml:"size"`
}

// Notional is price * size of the level.
func (l Level) Notional() float64 {
	return l.Price * l.Size
}

// ParseLevel converts the string price/size pair most exchange REST APIs
// return into a Level.
func ParseLevel(price, size string) (Level, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return Level{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	s, err := decimal.NewFromString(size)
	if err != nil {
		return Level{}, fmt.Errorf("parse size %q: %w", size, err)
	}
	if p.IsNegative() || s.IsNegative() {
		return Level{}, fmt.Errorf("negative level %s@%s", size, price)
	}
	return Level{Price: p.InexactFloat64(), Size: s.InexactFloat64()}, nil
}

// ParseLevels converts [price, size] string pairs, keeping their order.
func ParseLevels(pairs [][2]string) ([]Level, error) {
	out := make([]Level, 0, len(pairs))
	for i, pr := range pairs {
		l, err := ParseLevel(pr[0], pr[1])
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}
