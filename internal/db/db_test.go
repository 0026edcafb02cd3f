package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestWithTxCommits(t *testing.T) {
	db, mock := newMockDB(t)
	mgr := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE members").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := mgr.WithTx(context.Background(), func(q Querier) error {
		_, err := q.ExecContext(context.Background(), "UPDATE members SET status = 'Active'")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mgr := NewTxManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.WithTx(context.Background(), func(q Querier) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxBeginFails(t *testing.T) {
	db, mock := newMockDB(t)
	mgr := NewTxManager(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := mgr.WithTx(context.Background(), func(q Querier) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestExists(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), db, "SELECT EXISTS(SELECT 1 FROM gyms WHERE id = $1)", int64(1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
