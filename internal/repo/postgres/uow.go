package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zen-techno/zen/internal/repo"
)

// Factory opens one transaction-scoped unit of work per logical operation.
// The pool is threaded in explicitly so tests can substitute an isolated
// store per run.
type Factory struct {
	pool *pgxpool.Pool
}

func NewFactory(pool *pgxpool.Pool) *Factory {
	return &Factory{pool: pool}
}

func (f *Factory) Begin(ctx context.Context) (repo.UnitOfWork, error) {
	if f.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil: %w", repo.ErrStore)
	}

	tx, err := f.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %v: %w", err, repo.ErrStore)
	}

	return &UnitOfWork{
		tx:         tx,
		users:      newUserRepo(tx),
		categories: newCategoryRepo(tx),
		expenses:   newExpenseRepo(tx),
	}, nil
}

// UnitOfWork bounds the lifetime of one transaction and the repositories
// sharing it. Commit and Rollback tolerate an already-finished transaction,
// so the usual shape is:
//
//	uow, err := factory.Begin(ctx)
//	defer uow.Rollback(ctx)
//	... repository calls ...
//	return uow.Commit(ctx)
type UnitOfWork struct {
	tx         pgx.Tx
	users      *UserRepo
	categories *CategoryRepo
	expenses   *ExpenseRepo
}

func (u *UnitOfWork) Users() repo.UserRepository          { return u.users }
func (u *UnitOfWork) Categories() repo.CategoryRepository { return u.categories }
func (u *UnitOfWork) Expenses() repo.ExpenseRepository    { return u.expenses }

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("commit tx: %v: %w", err, repo.ErrStore)
	}
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback tx: %v: %w", err, repo.ErrStore)
	}
	return nil
}
