package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Side
		err  bool
	}{
		{"buy", Buy, false},
		{"BUY", Buy, false},
		{" b ", Buy, false},
		{"sell", Sell, false},
		{"Sell", Sell, false},
		{"s", Sell, false},
		{"hold", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSide(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownSide)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSideText(t *testing.T) {
	t.Parallel()

	b, err := Sell.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sell", string(b))

	var s Side
	require.NoError(t, s.UnmarshalText([]byte("BUY")))
	assert.Equal(t, Buy, s)

	_, err = Side(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownSide)
	assert.Equal(t, "side(7)", Side(7).String())
}

func TestOrderPrice(t *testing.T) {
	t.Parallel()

	o := FromFill(Buy, 2.5, 4)
	assert.Equal(t, Buy, o.Side)
	assert.InDelta(t, 10.0, o.Value, 1e-12)
	assert.InDelta(t, 2.5, o.Price(), 1e-12)

	assert.Equal(t, 0.0, NewSell(1, 0).Price())
}

func TestApprox(t *testing.T) {
	t.Parallel()

	assert.True(t, ApproxZero(0))
	assert.True(t, ApproxZero(1e-12))
	assert.True(t, ApproxZero(-1e-12))
	assert.False(t, ApproxZero(1e-6))
	assert.True(t, ApproxEqual(0.1+0.2, 0.3))
}

func TestFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{-1e308, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Finite(tt.x), "%v", tt.x)
	}
}

func TestParseLevels(t *testing.T) {
	t.Parallel()

	levels, err := ParseLevels([][2]string{
		{"100.10", "0.5"},
		{"100.20", "1.25"},
	})
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, Level{Price: 100.10, Size: 0.5}, levels[0])
	assert.InDelta(t, 125.25, levels[1].Notional(), 1e-9)

	_, err = ParseLevels([][2]string{{"abc", "1"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "level 0")

	_, err = ParseLevel("1", "-2")
	assert.Error(t, err)
}
