package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command. Flag globals survive between Execute
// calls, so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, dbPath, logLevel = "", "", ""
	pnlPrice, pnlSince, pnlUntil, pnlLegacy = 0, "", "", false
	estimateBook, estimateSide, estimateQty = "", "buy", 0
	fillsAddDate, fillsExportOut = "", ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestFillsAndPnL(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fills.sqlite")

	_, err := run(t, "--db", db, "fills", "add", "BTC", "buy", "2", "10", "--date", "2024-01-01")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "fills", "add", "BTC", "sell", "1", "15", "--date", "2024-01-02")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "fills", "list")
	require.NoError(t, err)
	assert.Equal(t, "BTC\n", out)

	out, err = run(t, "--db", db, "fills", "list", "btc")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "\n"))

	out, err = run(t, "--db", db, "pnl", "BTC", "--price", "20")
	require.NoError(t, err)
	assert.Contains(t, out, ":FILLS: 2\n")
	assert.Contains(t, out, ":REALIZED_PNL: 5.0000\n")
	assert.Contains(t, out, ":REALIZED_PNL_PCT: 50.00\n")
	assert.Contains(t, out, ":UNREALIZED_PNL: 10.0000\n")
	assert.Contains(t, out, ":BREAK_EVEN_PRICE: 10.0000\n")

	out, err = run(t, "--db", db, "pnl", "BTC", "--price", "20", "--since", "2024-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, ":FILLS: 1\n")
	assert.Contains(t, out, ":BREAK_EVEN_PRICE: n/a\n")

	out, err = run(t, "--db", db, "pnl", "ETH", "--price", "1", "--sentinel")
	require.NoError(t, err)
	assert.Contains(t, out, ":REALIZED_PNL_PCT: -999.00\n")
}

func TestFillsImportExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "fills.sqlite")
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte(
		"date,symbol,side,qty,price\n"+
			"2024-02-01,eth,buy,1,100\n"+
			"2024-02-02,eth,buy,1,200\n"), 0644))

	out, err := run(t, "--db", db, "fills", "import", src)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 fills\n", out)

	dst := filepath.Join(dir, "out.csv")
	_, err = run(t, "--db", db, "fills", "export", "ETH", "-o", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], ",ETH,buy,1,100")

	id := strings.SplitN(lines[1], ",", 2)[0]
	_, err = run(t, "--db", db, "fills", "rm", id)
	require.NoError(t, err)
	_, err = run(t, "--db", db, "fills", "rm", id)
	assert.Error(t, err)
}

func TestEstimateCommand(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "book.yaml")
	require.NoError(t, os.WriteFile(book, []byte(`
symbol: X
bids: [["0.009", "5"]]
asks: [["0.1", "1"], ["0.01", "1"]]
`), 0644))

	out, err := run(t, "--db", filepath.Join(dir, "db.sqlite"), "estimate", "--book", book, "--qty", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, ":AVERAGE_PRICE: 0.0400\n")
	assert.Contains(t, out, ":LIMIT_PRICE: 0.1000\n")

	out, err = run(t, "--db", filepath.Join(dir, "db.sqlite"), "estimate", "--book", book, "--qty", "10", "--side", "sell")
	require.NoError(t, err)
	assert.Contains(t, out, ":PARTIAL: true\n")

	_, err = run(t, "estimate", "--book", book, "--side", "hold")
	assert.Error(t, err)

	for _, qty := range []string{"NaN", "+Inf", "-Inf"} {
		_, err = run(t, "--db", filepath.Join(dir, "db.sqlite"), "estimate", "--book", book, "--qty", qty)
		assert.Error(t, err, qty)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tc.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")

	_, err = run(t, "--config", path, "--log-level", "loud", "version")
	assert.Error(t, err)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tradecalc version")
}
