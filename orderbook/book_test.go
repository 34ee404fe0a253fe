package orderbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradecalc/market"
)

func testBook() *Book {
	return &Book{
		Symbol: "BTC_USDT",
		Bids:   levels([2]float64{99, 1}, [2]float64{98, 2}, [2]float64{95, 5}),
		Asks:   levels([2]float64{101, 1}, [2]float64{102, 2}, [2]float64{105, 5}),
	}
}

func TestBookEstimate(t *testing.T) {
	t.Parallel()

	b := testBook()

	buy, err := b.Estimate(market.Buy, 2)
	require.NoError(t, err)
	assert.InDelta(t, 101.5, buy.Average, 1e-9)
	assert.InDelta(t, 102.0, buy.Limit, 1e-9)

	sell, err := b.Estimate(market.Sell, 2)
	require.NoError(t, err)
	assert.InDelta(t, 98.5, sell.Average, 1e-9)
	assert.InDelta(t, 98.0, sell.Limit, 1e-9)

	_, err = b.Estimate(market.Side(0), 1)
	assert.ErrorIs(t, err, market.ErrUnknownSide)

	empty := &Book{}
	_, err = empty.EstimateSell(1)
	assert.ErrorIs(t, err, ErrEmptyBook)
	assert.Contains(t, err.Error(), "bids")
}

func TestBookSortAndSpread(t *testing.T) {
	t.Parallel()

	b := &Book{
		Bids: levels([2]float64{95, 1}, [2]float64{99, 1}),
		Asks: levels([2]float64{105, 1}, [2]float64{101, 1}),
	}
	b.Sort()
	assert.Equal(t, 99.0, b.Bids[0].Price)
	assert.Equal(t, 101.0, b.Asks[0].Price)

	spread, ok := b.Spread()
	assert.True(t, ok)
	assert.InDelta(t, 2.0, spread, 1e-12)

	_, ok = (&Book{Bids: b.Bids}).Spread()
	assert.False(t, ok)
}

func TestReadBook(t *testing.T) {
	t.Parallel()

	src := `
symbol: ETH_USDT
bids:
  - ["1999.5", "0.4"]
  - ["2000.0", "1.1"]
asks:
  - ["2001.25", "3"]
`
	b, err := ReadBook(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "ETH_USDT", b.Symbol)
	require.Len(t, b.Bids, 2)
	assert.Equal(t, 2000.0, b.Bids[0].Price)
	assert.Equal(t, market.Level{Price: 2001.25, Size: 3}, b.Asks[0])
}

func TestLoadBookJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.json")
	src := `{"symbol":"X","bids":[["1","2"]],"asks":[["3","4"]]}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	b, err := LoadBook(path)
	require.NoError(t, err)
	assert.Equal(t, "X", b.Symbol)
	assert.Equal(t, market.Level{Price: 1, Size: 2}, b.Bids[0])

	_, err = LoadBook(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadBook(strings.NewReader(`bids: [["x", "1"]]`))
	assert.Error(t, err)
}
