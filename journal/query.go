package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradecalc/market"
)

const selectFills = `
	SELECT fill_id, date, symbol, side, qty, price
	FROM fills`

type scanner interface {
	Scan(dest ...any) error
}

func scanFill(s scanner) (Fill, error) {
	var (
		f    Fill
		side string
	)
	if err := s.Scan(&f.FillID, &f.Date, &f.Symbol, &side, &f.Qty, &f.Price); err != nil {
		return Fill{}, err
	}
	var err error
	if f.Side, err = market.ParseSide(side); err != nil {
		return Fill{}, fmt.Errorf("fill %s: %w", f.FillID, err)
	}
	return f, nil
}

func collect(rows *sql.Rows) ([]Fill, error) {
	defer rows.Close()

	var out []Fill
	for rows.Next() {
		f, err := scanFill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFill returns a single fill by ID.
func (j *SQLite) GetFill(ctx context.Context, fillID string) (Fill, error) {
	row := j.db.QueryRowContext(ctx, selectFills+`
		WHERE fill_id = ?`, fillID)

	f, err := scanFill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Fill{}, fmt.Errorf("%w: %q", ErrFillNotFound, fillID)
		}
		return Fill{}, err
	}
	return f, nil
}

// ListFills returns the fills of symbol in execution order, the order the
// PnL engine needs them in. Fills sharing a date keep the order they were
// recorded in.
func (j *SQLite) ListFills(ctx context.Context, symbol string) ([]Fill, error) {
	rows, err := j.db.QueryContext(ctx, selectFills+`
		WHERE symbol = ?
		ORDER BY date ASC, seq ASC`, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListFillsBetween returns fills of symbol with date within [start, end).
func (j *SQLite) ListFillsBetween(ctx context.Context, symbol string, start, end time.Time) ([]Fill, error) {
	rows, err := j.db.QueryContext(ctx, selectFills+`
		WHERE symbol = ? AND date >= ? AND date < ?
		ORDER BY date ASC, seq ASC`, strings.ToUpper(symbol), start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListSymbols returns every symbol with at least one fill.
func (j *SQLite) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM fills ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
