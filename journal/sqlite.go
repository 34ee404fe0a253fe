package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradecalc/market"
	"github.com/rustyeddy/tradecalc/pkg/id"
)

type SQLite struct {
	db *sql.DB
}

var _ FillLister = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	j, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// New wraps an already open database and makes sure the schema exists.
func New(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// RecordFill stores f. A missing FillID is generated from the fill date.
func (j *SQLite) RecordFill(ctx context.Context, f Fill) (Fill, error) {
	if err := validateFill(f); err != nil {
		return Fill{}, err
	}
	f.Date = f.Date.UTC()
	f.Symbol = strings.ToUpper(f.Symbol)
	if f.FillID == "" {
		f.FillID = id.NewAt(f.Date)
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO fills
		(fill_id, date, symbol, side, qty, price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.FillID, f.Date, f.Symbol, f.Side.String(), f.Qty, f.Price,
	)
	if err != nil {
		return Fill{}, fmt.Errorf("insert fill: %w", err)
	}
	return f, nil
}

// RecordFills stores all fills in one transaction.
func (j *SQLite) RecordFills(ctx context.Context, fills []Fill) ([]Fill, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fills
		(fill_id, date, symbol, side, qty, price)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	out := make([]Fill, 0, len(fills))
	for i, f := range fills {
		if err := validateFill(f); err != nil {
			return nil, fmt.Errorf("fill %d: %w", i, err)
		}
		f.Date = f.Date.UTC()
		f.Symbol = strings.ToUpper(f.Symbol)
		if f.FillID == "" {
			f.FillID = id.NewAt(f.Date)
		}
		if _, err := stmt.ExecContext(ctx, f.FillID, f.Date, f.Symbol, f.Side.String(), f.Qty, f.Price); err != nil {
			return nil, fmt.Errorf("fill %d: %w", i, err)
		}
		out = append(out, f)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteFill removes a fill by ID.
func (j *SQLite) DeleteFill(ctx context.Context, fillID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM fills WHERE fill_id = ?`, fillID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrFillNotFound, fillID)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func validateFill(f Fill) error {
	if f.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if _, err := f.Side.MarshalText(); err != nil {
		return err
	}
	if !market.Finite(f.Qty) || !market.Finite(f.Price) {
		return fmt.Errorf("qty and price must be finite numbers")
	}
	if f.Qty < 0 || f.Price < 0 {
		return fmt.Errorf("qty and price must not be negative")
	}
	if f.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}
