package orderbook

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradecalc/market"
)

// rawBook is the exchange REST shape: levels as [price, size] strings.
// YAML and JSON files both decode into it.
type rawBook struct {
	Symbol string      `yaml:"symbol"`
	Bids   [][2]string `yaml:"bids"`
	Asks   [][2]string `yaml:"asks"`
}

// ReadBook decodes a book snapshot and sorts both sides.
func ReadBook(r io.Reader) (*Book, error) {
	var raw rawBook
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}

	bids, err := market.ParseLevels(raw.Bids)
	if err != nil {
		return nil, fmt.Errorf("bids: %w", err)
	}
	asks, err := market.ParseLevels(raw.Asks)
	if err != nil {
		return nil, fmt.Errorf("asks: %w", err)
	}

	b := &Book{Symbol: raw.Symbol, Bids: bids, Asks: asks}
	b.Sort()
	return b, nil
}

func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	defer f.Close()
	return ReadBook(f)
}
