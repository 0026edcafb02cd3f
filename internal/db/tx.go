package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxManager runs a function inside one database transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

type SQLTxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *SQLTxManager {
	return &SQLTxManager{db: db}
}

// WithTx commits when fn returns nil and rolls back otherwise.
func (m *SQLTxManager) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
