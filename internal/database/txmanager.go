package database

import (
	"context"
	"database/sql"
	"fmt"
)

// txKey carries an open transaction through the context.
type txKey struct{}

// Querier is the query surface shared by *sql.DB and *sql.Tx, so repositories
// run the same statements inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a unit of work inside a single database transaction.
// User registration uses this so a partially created account never persists.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager backed by the given database.
func NewTxManager(db *sql.DB) TxManager {
	return &txManager{db: db}
}

// WithTx begins a transaction, stores it in the context for GetTx, and
// commits when fn succeeds or rolls back when it fails.
func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// GetTx returns the transaction carried by the context, or falls back to the
// plain connection when the caller is not running inside WithTx.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
