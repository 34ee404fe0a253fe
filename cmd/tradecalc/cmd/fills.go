package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradecalc/journal"
	"github.com/rustyeddy/tradecalc/market"
)

var fillsCmd = &cobra.Command{
	Use:   "fills",
	Short: "Manage the fills journal",
	Long: `Record, list, import and export executed fills.

Subcommands:
  add     - Record one fill
  list    - List fills of a symbol, oldest first
  import  - Import fills from CSV
  export  - Export fills of a symbol to CSV
  rm      - Delete a fill by ID

Examples:
  tradecalc fills add BTC_USDT buy 0.5 64000
  tradecalc fills list BTC_USDT
  tradecalc fills import binance.csv`,
}

var fillsAddCmd = &cobra.Command{
	Use:   "add <symbol> <buy|sell> <qty> <price>",
	Short: "Record one fill",
	Args:  cobra.ExactArgs(4),
	RunE:  runFillsAdd,
}

var fillsListCmd = &cobra.Command{
	Use:   "list [symbol]",
	Short: "List fills of a symbol, or the journaled symbols",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFillsList,
}

var fillsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import fills from CSV (columns: date,symbol,side,qty,price[,fill_id])",
	Args:  cobra.ExactArgs(1),
	RunE:  runFillsImport,
}

var fillsExportCmd = &cobra.Command{
	Use:   "export <symbol>",
	Short: "Export fills of a symbol as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runFillsExport,
}

var fillsRmCmd = &cobra.Command{
	Use:   "rm <fill-id>",
	Short: "Delete a fill",
	Args:  cobra.ExactArgs(1),
	RunE:  runFillsRm,
}

var (
	fillsAddDate   string
	fillsExportOut string
)

func init() {
	rootCmd.AddCommand(fillsCmd)
	fillsCmd.AddCommand(fillsAddCmd)
	fillsCmd.AddCommand(fillsListCmd)
	fillsCmd.AddCommand(fillsImportCmd)
	fillsCmd.AddCommand(fillsExportCmd)
	fillsCmd.AddCommand(fillsRmCmd)

	fillsAddCmd.Flags().StringVar(&fillsAddDate, "date", "", "execution time, RFC3339 or YYYY-MM-DD in UTC (default now)")
	fillsExportCmd.Flags().StringVarP(&fillsExportOut, "output", "o", "", "output file (default stdout)")
}

func runFillsAdd(cmd *cobra.Command, args []string) error {
	side, err := market.ParseSide(args[1])
	if err != nil {
		return err
	}
	var qty, price float64
	if _, err := fmt.Sscan(args[2], &qty); err != nil {
		return fmt.Errorf("qty: %w", err)
	}
	if _, err := fmt.Sscan(args[3], &price); err != nil {
		return fmt.Errorf("price: %w", err)
	}

	date := time.Now()
	if fillsAddDate != "" {
		if date, err = parseDay(fillsAddDate); err != nil {
			return err
		}
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.RecordFill(cmd.Context(), journal.Fill{
		Date:   date,
		Symbol: args[0],
		Side:   side,
		Qty:    qty,
		Price:  price,
	})
	if err != nil {
		return fmt.Errorf("record fill: %w", err)
	}

	logger.Info("fill recorded", zap.String("fill_id", rec.FillID), zap.String("symbol", rec.Symbol))
	fmt.Fprintln(cmd.OutOrStdout(), rec.FillID)
	return nil
}

func runFillsList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if len(args) == 0 {
		symbols, err := j.ListSymbols(cmd.Context())
		if err != nil {
			return fmt.Errorf("query symbols: %w", err)
		}
		for _, s := range symbols {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	}

	fills, err := j.ListFills(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("query fills: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatFillsOrg(fills, cfg.Report.Precision))
	return nil
}

func runFillsImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	fills, err := journal.ReadCSV(f)
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.RecordFills(cmd.Context(), fills)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("fills imported", zap.String("file", args[0]), zap.Int("count", len(recs)))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d fills\n", len(recs))
	return nil
}

func runFillsExport(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	fills, err := j.ListFills(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("query fills: %w", err)
	}

	w := cmd.OutOrStdout()
	if fillsExportOut != "" {
		f, err := os.Create(fillsExportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return journal.WriteCSV(w, fills)
}

func runFillsRm(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteFill(cmd.Context(), args[0]); err != nil {
		return err
	}
	logger.Info("fill deleted", zap.String("fill_id", args[0]))
	return nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}
