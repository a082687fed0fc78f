package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finledger/finledger-backend/internal/domain"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against it so the same code works inside and outside a
// transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// querier returns the transaction carried by the context, if any, falling
// back to the plain connection pool.
func (db *DB) querier(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// txRunner implements domain.TxRunner on a database transaction carried
// through the context.
type txRunner struct {
	db *DB
}

// NewTxRunner creates a new transaction runner
func NewTxRunner(db *DB) domain.TxRunner {
	return &txRunner{db: db}
}

// Within begins a transaction, runs fn with a context that routes repository
// calls through it, and commits. Any error from fn rolls the whole unit back.
func (r *txRunner) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		// Already inside a transaction; join it.
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
