package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradecalc/journal"
)

// Server serves the PnL engine and fill estimator over HTTP.
type Server struct {
	fills  journal.FillLister
	logger *zap.Logger
}

// NewServer builds a Server. fills may be nil, in which case the symbol
// routes answer 503.
func NewServer(fills journal.FillLister, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{fills: fills, logger: logger}
}

// Routes:
//
//	GET  /healthz
//	GET  /metrics
//	POST /api/v1/pnl                      orders + market_price
//	POST /api/v1/estimate                 levels + qty
//	GET  /api/v1/symbols/{symbol}/pnl     ?price=
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.recovery)
	router.Use(s.logging)

	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/pnl", s.calculatePnL).Methods(http.MethodPost)
	v1.HandleFunc("/estimate", s.estimate).Methods(http.MethodPost)
	v1.HandleFunc("/symbols/{symbol}/pnl", s.symbolPnL).Methods(http.MethodGet)

	return router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
