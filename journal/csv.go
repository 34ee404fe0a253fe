package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradecalc/market"
)

var csvHeader = []string{"fill_id", "date", "symbol", "side", "qty", "price"}

// dateLayouts are tried in order when reading a CSV date column.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// WriteCSV writes fills with a header row.
func WriteCSV(w io.Writer, fills []Fill) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, fl := range fills {
		err := cw.Write([]string{
			fl.FillID,
			fl.Date.UTC().Format(time.RFC3339Nano),
			fl.Symbol,
			fl.Side.String(),
			f(fl.Qty),
			f(fl.Price),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads fills from CSV with a header row. Columns are matched by
// name; fill_id is optional.
func ReadCSV(r io.Reader) ([]Fill, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: missing header")
		}
		return nil, err
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range csvHeader[1:] {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", name)
		}
	}

	var out []Fill
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		fl, err := parseRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, fl)
	}
	return out, nil
}

func parseRecord(rec []string, col map[string]int) (Fill, error) {
	var (
		fl  Fill
		err error
	)
	if i, ok := col["fill_id"]; ok {
		fl.FillID = rec[i]
	}
	if fl.Date, err = parseDate(rec[col["date"]]); err != nil {
		return Fill{}, err
	}
	fl.Symbol = strings.ToUpper(rec[col["symbol"]])
	if fl.Side, err = market.ParseSide(rec[col["side"]]); err != nil {
		return Fill{}, err
	}
	if fl.Qty, err = strconv.ParseFloat(rec[col["qty"]], 64); err != nil {
		return Fill{}, fmt.Errorf("qty: %w", err)
	}
	if fl.Price, err = strconv.ParseFloat(rec[col["price"]], 64); err != nil {
		return Fill{}, fmt.Errorf("price: %w", err)
	}
	return fl, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
