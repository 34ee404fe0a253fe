package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculations counts PnL and fill estimate computations by kind
// ("pnl", "estimate") and outcome ("ok", "error").
var Calculations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradecalc",
		Name:      "calculations_total",
		Help:      "Number of PnL and fill price calculations",
	},
	[]string{"kind", "outcome"},
)

// FillsPerCalculation is the size of the fill history fed to the PnL engine.
var FillsPerCalculation = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "tradecalc",
		Name:      "fills_per_calculation",
		Help:      "Number of fills folded per PnL calculation",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	},
)

var PartialEstimates = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "tradecalc",
		Name:      "partial_estimates_total",
		Help:      "Fill estimates where the book ran out before the requested quantity",
	},
)

// RequestDuration is HTTP handler latency in seconds.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradecalc",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "code"},
)

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
