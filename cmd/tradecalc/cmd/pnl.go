package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradecalc/internal/metrics"
	"github.com/rustyeddy/tradecalc/journal"
	"github.com/rustyeddy/tradecalc/pnl"
)

var pnlCmd = &cobra.Command{
	Use:   "pnl <symbol>",
	Short: "Compute PnL and break-even price of a symbol's fills",
	Long: `Fold every journaled fill of <symbol>, oldest first, into a weighted
average cost basis and report realized and unrealized PnL at --price.

Examples:
  tradecalc pnl BTC_USDT --price 64000
  tradecalc pnl ETH_USDT --price 3100 --since 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runPnL,
}

var (
	pnlPrice  float64
	pnlSince  string
	pnlUntil  string
	pnlLegacy bool
)

func init() {
	rootCmd.AddCommand(pnlCmd)

	pnlCmd.Flags().Float64VarP(&pnlPrice, "price", "p", 0, "current market price (required)")
	pnlCmd.Flags().StringVar(&pnlSince, "since", "", "only fills on or after this day (YYYY-MM-DD)")
	pnlCmd.Flags().StringVar(&pnlUntil, "until", "", "only fills before this day (YYYY-MM-DD)")
	pnlCmd.Flags().BoolVar(&pnlLegacy, "sentinel", false, "print undefined percentages as -999 instead of n/a")
	pnlCmd.MarkFlagRequired("price")
}

func runPnL(cmd *cobra.Command, args []string) error {
	if math.IsNaN(pnlPrice) || math.IsInf(pnlPrice, 0) {
		return fmt.Errorf("price must be a finite number")
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	symbol := args[0]
	var fills []journal.Fill
	if pnlSince != "" || pnlUntil != "" {
		start, end, err := dateRange(pnlSince, pnlUntil)
		if err != nil {
			return err
		}
		fills, err = j.ListFillsBetween(cmd.Context(), symbol, start, end)
		if err != nil {
			return fmt.Errorf("query fills: %w", err)
		}
	} else {
		fills, err = j.ListFills(cmd.Context(), symbol)
		if err != nil {
			return fmt.Errorf("query fills: %w", err)
		}
	}

	res := pnl.Calculate(journal.Orders(fills), pnlPrice)
	metrics.Calculations.WithLabelValues("pnl", "ok").Inc()
	logger.Debug("pnl computed",
		zap.String("symbol", symbol),
		zap.Int("fills", len(fills)),
		zap.Float64("price", pnlPrice),
	)

	if pnlLegacy {
		res.RealizedPnLPercent = pnl.Some(res.RealizedPnLPercent.OrSentinel())
		res.UnrealizedPnLPercent = pnl.Some(res.UnrealizedPnLPercent.OrSentinel())
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatPnLOrg(journal.Report{
		Symbol:      symbol,
		MarketPrice: pnlPrice,
		Fills:       len(fills),
		Result:      res,
		Currency:    cfg.Report.Currency,
		Precision:   cfg.Report.Precision,
		Time:        time.Now(),
	}))
	return nil
}

// dateRange turns optional YYYY-MM-DD bounds into a [start, end) range.
func dateRange(since, until string) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

	var err error
	if since != "" {
		if start, err = time.ParseInLocation("2006-01-02", since, time.UTC); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("since: %w", err)
		}
	}
	if until != "" {
		if end, err = time.ParseInLocation("2006-01-02", until, time.UTC); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("until: %w", err)
		}
	}
	return start, end, nil
}
