package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradecalc/market"
	"github.com/rustyeddy/tradecalc/orderbook"
	"github.com/rustyeddy/tradecalc/pnl"
)

// Report is what FormatPnLOrg renders: the PnL of one symbol's fills at a
// market price.
type Report struct {
	Symbol      string
	MarketPrice float64
	Fills       int
	Result      pnl.Result
	Currency    string
	Precision   int32
	Time        time.Time
}

// FormatPnLOrg renders a Report as an Org-mode block. Undefined figures are
// written as n/a so the drawer stays searchable.
func FormatPnLOrg(r Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** PnL: %s @ %s\n", r.Symbol, fixed(r.MarketPrice, r.Precision)))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", r.Symbol))
	if !r.Time.IsZero() {
		b.WriteString(fmt.Sprintf(":TIME: %s\n", r.Time.UTC().Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf(":FILLS: %d\n", r.Fills))
	b.WriteString(fmt.Sprintf(":CURRENCY: %s\n", r.Currency))
	b.WriteString(fmt.Sprintf(":MARKET_PRICE: %s\n", fixed(r.MarketPrice, r.Precision)))
	b.WriteString(fmt.Sprintf(":POSITION_QTY: %s\n", fixed(r.Result.PositionQty, r.Precision)))
	b.WriteString(fmt.Sprintf(":BREAK_EVEN_PRICE: %s\n", nullFixed(r.Result.BreakEvenPrice, r.Precision)))
	b.WriteString(fmt.Sprintf(":REALIZED_PNL: %s\n", fixed(r.Result.RealizedPnL, r.Precision)))
	b.WriteString(fmt.Sprintf(":REALIZED_PNL_PCT: %s\n", nullFixed(r.Result.RealizedPnLPercent, 2)))
	b.WriteString(fmt.Sprintf(":UNREALIZED_SELL_VALUE: %s\n", fixed(r.Result.UnrealizedSellValue, r.Precision)))
	b.WriteString(fmt.Sprintf(":UNREALIZED_PNL: %s\n", fixed(r.Result.UnrealizedPnL, r.Precision)))
	b.WriteString(fmt.Sprintf(":UNREALIZED_PNL_PCT: %s\n", nullFixed(r.Result.UnrealizedPnLPercent, 2)))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatEstimateOrg renders a fill price estimate as an Org-mode block.
func FormatEstimateOrg(symbol string, side market.Side, qty float64, est orderbook.Estimate, precision int32) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Estimate: %s %s %s\n", side, fixed(qty, precision), symbol))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", side))
	b.WriteString(fmt.Sprintf(":QTY: %s\n", fixed(qty, precision)))
	b.WriteString(fmt.Sprintf(":FILLED: %s\n", fixed(est.Filled, precision)))
	b.WriteString(fmt.Sprintf(":AVERAGE_PRICE: %s\n", fixed(est.Average, precision)))
	b.WriteString(fmt.Sprintf(":LIMIT_PRICE: %s\n", fixed(est.Limit, precision)))
	b.WriteString(fmt.Sprintf(":PARTIAL: %t\n", est.Partial))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatFillsOrg renders fills as an Org table.
func FormatFillsOrg(fills []Fill, precision int32) string {
	var b strings.Builder
	b.WriteString("| ID | Date | Symbol | Side | Qty | Price | Value |\n")
	b.WriteString("|----+------+--------+------+-----+-------+-------|\n")
	for _, fl := range fills {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			shortID(fl.FillID),
			fl.Date.UTC().Format(time.RFC3339),
			fl.Symbol,
			fl.Side,
			fixed(fl.Qty, precision),
			fixed(fl.Price, precision),
			fixed(fl.Order().Value, precision),
		))
	}
	return b.String()
}

func fixed(x float64, places int32) string {
	if !market.Finite(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func nullFixed(n pnl.NullFloat, places int32) string {
	if !n.Valid {
		return "n/a"
	}
	return fixed(n.Float64, places)
}

func shortID(full string) string {
	// ULIDs lead with the timestamp; the random tail tells fills apart.
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
