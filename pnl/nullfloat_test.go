package pnl

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullFloat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12.5, Some(12.5).Or(0))
	assert.Equal(t, InvalidPercent, NullFloat{}.OrSentinel())
	assert.Equal(t, "n/a", NullFloat{}.String())
	assert.Equal(t, "0.25", Some(0.25).String())
}

func TestNullFloatJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Calculate(nil, 1))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"realized_pnl_percent":null`)
	assert.Contains(t, string(b), `"break_even_price":null`)

	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"realized_pnl_percent":20,"break_even_price":null}`), &r))
	assert.Equal(t, Some(20), r.RealizedPnLPercent)
	assert.False(t, r.BreakEvenPrice.Valid)
}

func TestNullFloatJSONNonFinite(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := json.Marshal(Some(v))
		assert.Error(t, err, "%v", v)

		_, err = json.Marshal(Result{BreakEvenPrice: Some(v)})
		assert.Error(t, err, "%v", v)
	}

	// undefined values encode as null whatever they hold
	b, err := json.Marshal(NullFloat{Float64: math.NaN()})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
