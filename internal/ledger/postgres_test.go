package ledger

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/safar/rakhi-store/internal/database"
)

const (
	lockSQL   = `SELECT pg_advisory_xact_lock(hashtext($1))`
	insertSQL = `INSERT INTO ledger_rows (sheet, cells) VALUES ($1, $2)`
	headerSQL = `SELECT cells FROM ledger_rows WHERE sheet = $1 ORDER BY id LIMIT 1`
)

func arrayLiteral(t *testing.T, cells []string) string {
	t.Helper()
	v, err := pq.Array(cells).Value()
	require.NoError(t, err)
	return v.(string)
}

func expectLock(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta(lockSQL)).
		WithArgs("Orders").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestPostgresEnsureSchema_WritesHeader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM ledger_rows WHERE sheet = $1)`)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).
		WithArgs("Orders", pq.Array(Header)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, NewPostgres(db, "Orders").EnsureSchema(context.Background(), Header))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEnsureSchema_KeepsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM ledger_rows WHERE sheet = $1)`)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	require.NoError(t, NewPostgres(db, "Orders").EnsureSchema(context.Background(), Header))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendRows_OrdersCellsByStoredHeader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := []string{ColProduct, ColOrderID}
	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(regexp.QuoteMeta(headerSQL)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).AddRow(arrayLiteral(t, stored)))
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).
		WithArgs("Orders", pq.Array([]string{"Pearl Rakhi", "a1b2c3d4"})).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = NewPostgres(db, "Orders").AppendRows(context.Background(), []Row{RowFromLine(sampleLine())})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendRows_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(regexp.QuoteMeta(headerSQL)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).AddRow(arrayLiteral(t, Header)))
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	rows := []Row{RowFromLine(sampleLine()), RowFromLine(sampleLine())}
	err = NewPostgres(db, "Orders").AppendRows(context.Background(), rows)
	require.Error(t, err)

	var transient *database.TransientError
	require.True(t, errors.As(err, &transient), "serialization failures should be retryable")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendRows_NoHeader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectLock(mock)
	mock.ExpectQuery(regexp.QuoteMeta(headerSQL)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"cells"}))
	mock.ExpectRollback()

	err = NewPostgres(db, "Orders").AppendRows(context.Background(), []Row{RowFromLine(sampleLine())})
	require.ErrorIs(t, err, errNoHeader)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReadAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	line := RowFromLine(sampleLine())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT cells FROM ledger_rows WHERE sheet = $1 ORDER BY id`)).
		WithArgs("Orders").
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).
			AddRow(arrayLiteral(t, Header)).
			AddRow(arrayLiteral(t, cellsFor(Header, line))))

	rows, err := NewPostgres(db, "Orders").ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, line, rows[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReadAll_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT cells FROM ledger_rows`)).
		WillReturnError(errors.New("connection reset"))

	rows, err := NewPostgres(db, "Orders").ReadAll(context.Background())
	require.Error(t, err)
	require.Nil(t, rows)
}
