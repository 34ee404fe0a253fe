package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradecalc/market"
)

func newMockJournal(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS fills`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	j, err := New(db)
	require.NoError(t, err)
	return j, mock
}

func TestNewSchemaError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("disk full"))

	_, err = New(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFillInsertError(t *testing.T) {
	t.Parallel()

	j, mock := newMockJournal(t)
	mock.ExpectExec(`INSERT INTO fills`).
		WillReturnError(errors.New("locked"))

	_, err := j.RecordFill(context.Background(), Fill{
		Date: time.Now(), Symbol: "BTC", Side: market.Buy, Qty: 1, Price: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert fill")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFillsScanBadSide(t *testing.T) {
	t.Parallel()

	j, mock := newMockJournal(t)
	rows := sqlmock.NewRows([]string{"fill_id", "date", "symbol", "side", "qty", "price"}).
		AddRow("F1", time.Now(), "BTC", "hold", 1.0, 2.0)
	mock.ExpectQuery(`SELECT .+ FROM fills`).
		WithArgs("BTC").
		WillReturnRows(rows)

	_, err := j.ListFills(context.Background(), "btc")
	assert.ErrorIs(t, err, market.ErrUnknownSide)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFillsQueryError(t *testing.T) {
	t.Parallel()

	j, mock := newMockJournal(t)
	mock.ExpectQuery(`SELECT .+ FROM fills`).
		WillReturnError(errors.New("boom"))

	_, err := j.ListFills(context.Background(), "BTC")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFillsCommitError(t *testing.T) {
	t.Parallel()

	j, mock := newMockJournal(t)
	mock.ExpectBegin()
	mock.ExpectPrepare(`INSERT INTO fills`).
		ExpectExec().
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	_, err := j.RecordFills(context.Background(), []Fill{
		{Date: time.Now(), Symbol: "BTC", Side: market.Buy, Qty: 1, Price: 1},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
