package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradecalc/internal/metrics"
	"github.com/rustyeddy/tradecalc/journal"
	"github.com/rustyeddy/tradecalc/market"
	"github.com/rustyeddy/tradecalc/orderbook"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the fill price of taking a quantity from an order book",
	Long: `Walk an order book snapshot best price first and report the volume
weighted average price and the limit (worst touched) price for --qty.

A buy walks the asks, a sell the bids. The snapshot is YAML or JSON with
exchange style [price, size] string pairs:

  symbol: BTC_USDT
  bids: [["64000.1", "0.5"], ["63999.0", "1.2"]]
  asks: [["64001.0", "0.3"], ["64002.5", "2.0"]]

Examples:
  tradecalc estimate --book book.yaml --side buy --qty 1.5`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

var (
	estimateBook string
	estimateSide string
	estimateQty  float64
)

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&estimateBook, "book", "b", "", "order book snapshot file (required)")
	estimateCmd.Flags().StringVarP(&estimateSide, "side", "s", "buy", "buy or sell")
	estimateCmd.Flags().Float64VarP(&estimateQty, "qty", "q", 0, "quantity to fill")
	estimateCmd.MarkFlagRequired("book")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	side, err := market.ParseSide(estimateSide)
	if err != nil {
		return err
	}

	book, err := orderbook.LoadBook(estimateBook)
	if err != nil {
		return err
	}

	est, err := book.Estimate(side, estimateQty)
	metrics.Calculations.WithLabelValues("estimate", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}
	if est.Partial {
		logger.Warn("order book exhausted before requested quantity",
			zap.String("symbol", book.Symbol),
			zap.Float64("qty", estimateQty),
			zap.Float64("filled", est.Filled),
		)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatEstimateOrg(book.Symbol, side, estimateQty, est, cfg.Report.Precision))
	return nil
}
