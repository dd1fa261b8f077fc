package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// either standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork exposes the repositories bound to one open transaction.
type UnitOfWork interface {
	Carts() CartRepository
	Orders() OrderRepository
}

type Transactor interface {
	// WithinTx commits when fn returns nil and rolls back on error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

type sqlTransactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) (err error) {

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(ctx, &txUnit{tx: tx})
}

type txUnit struct {
	tx *sql.Tx
}

func (u *txUnit) Carts() CartRepository {
	return NewCartRepo(u.tx)
}

func (u *txUnit) Orders() OrderRepository {
	return NewOrderRepository(u.tx)
}
