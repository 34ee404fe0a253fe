package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradecalc/internal/metrics"
	"github.com/rustyeddy/tradecalc/journal"
	"github.com/rustyeddy/tradecalc/market"
	"github.com/rustyeddy/tradecalc/orderbook"
	"github.com/rustyeddy/tradecalc/pnl"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBody = 4 << 20

const errOverflow = "result overflowed to a non-finite number"

type ErrorResponse struct {
	Error string `json:"error"`
}

type PnLRequest struct {
	Orders      []market.Order `json:"orders"`
	MarketPrice float64        `json:"market_price"`
}

type EstimateRequest struct {
	Levels []market.Level `json:"levels"`
	Qty    float64        `json:"qty"`
}

type SymbolPnLResponse struct {
	Symbol      string     `json:"symbol"`
	MarketPrice float64    `json:"market_price"`
	Fills       int        `json:"fills"`
	Result      pnl.Result `json:"result"`
}

func (s *Server) calculatePnL(w http.ResponseWriter, r *http.Request) {
	var req PnLRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !market.Finite(req.MarketPrice) {
		writeError(w, http.StatusBadRequest, "market_price must be a finite number")
		return
	}

	res := pnl.Calculate(req.Orders, req.MarketPrice)
	if !res.Finite() {
		metrics.Calculations.WithLabelValues("pnl", "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, errOverflow)
		return
	}
	metrics.Calculations.WithLabelValues("pnl", "ok").Inc()
	metrics.FillsPerCalculation.Observe(float64(len(req.Orders)))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	est, err := orderbook.EstimateFillPrice(req.Levels, req.Qty)
	metrics.Calculations.WithLabelValues("estimate", metrics.Outcome(err)).Inc()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if est.Partial {
		metrics.PartialEstimates.Inc()
	}

	writeJSON(w, http.StatusOK, est)
}

func (s *Server) symbolPnL(w http.ResponseWriter, r *http.Request) {
	if s.fills == nil {
		writeError(w, http.StatusServiceUnavailable, "no journal configured")
		return
	}

	symbol := mux.Vars(r)["symbol"]
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil || !market.Finite(price) {
		writeError(w, http.StatusBadRequest, "price query parameter must be a number")
		return
	}

	fills, err := s.fills.ListFills(r.Context(), symbol)
	if err != nil {
		s.logger.Error("list fills", zap.String("symbol", symbol), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load fills")
		return
	}
	if len(fills) == 0 {
		writeError(w, http.StatusNotFound, "no fills for symbol")
		return
	}

	res := pnl.Calculate(journal.Orders(fills), price)
	if !res.Finite() {
		metrics.Calculations.WithLabelValues("pnl", "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, errOverflow)
		return
	}
	metrics.Calculations.WithLabelValues("pnl", "ok").Inc()
	metrics.FillsPerCalculation.Observe(float64(len(fills)))

	writeJSON(w, http.StatusOK, SymbolPnLResponse{
		Symbol:      fills[0].Symbol,
		MarketPrice: price,
		Fills:       len(fills),
		Result:      res,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeJSON encodes v before touching w so an encoding failure can still
// be reported with a proper status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
