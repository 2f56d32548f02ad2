package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

// UnitOfWorkOption configures a SQLiteUnitOfWork.
type UnitOfWorkOption func(*SQLiteUnitOfWork)

// WithTxLogger reports rollbacks to logger.
func WithTxLogger(logger *slog.Logger) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) { u.logger = logger }
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		if u.logger != nil {
			u.logger.WarnContext(ctx, "transaction rolled back", "error", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
