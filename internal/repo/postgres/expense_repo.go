package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

type ExpenseRepo struct {
	generic repository[domain.Expense]
}

func newExpenseRepo(tx pgx.Tx) *ExpenseRepo {
	return &ExpenseRepo{generic: repository[domain.Expense]{
		tx:      tx,
		table:   "expenses",
		columns: []string{"id", "name", "amount", "transaction_at", "who_paid_id", "category_id"},
		scanRow: scanExpense,
	}}
}

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.TransactionAt, &e.WhoPaidID, &e.CategoryID)
	return e, err
}

func (r *ExpenseRepo) GetAll(ctx context.Context, filters ...repo.Filter) ([]domain.Expense, error) {
	return r.generic.getAll(ctx, filters)
}

func (r *ExpenseRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.Expense, error) {
	return r.generic.getOne(ctx, filters)
}

func (r *ExpenseRepo) AddOne(ctx context.Context, data domain.ExpenseData) (domain.Expense, error) {
	return r.generic.addOne(ctx, uuid.New(),
		[]string{"name", "amount", "transaction_at", "who_paid_id", "category_id"},
		[]any{data.Name, data.Amount, data.TransactionAt, data.WhoPaidID, data.CategoryID},
	)
}

func (r *ExpenseRepo) UpdateOne(ctx context.Context, id uuid.UUID, data domain.ExpenseData) (domain.Expense, error) {
	return r.generic.updateOne(ctx, id,
		[]string{"name", "amount", "transaction_at", "who_paid_id", "category_id"},
		[]any{data.Name, data.Amount, data.TransactionAt, data.WhoPaidID, data.CategoryID},
	)
}

func (r *ExpenseRepo) DeleteOne(ctx context.Context, id uuid.UUID) error {
	return r.generic.deleteOne(ctx, id)
}
