package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

type CategoryRepo struct {
	generic repository[domain.Category]
}

func newCategoryRepo(tx pgx.Tx) *CategoryRepo {
	return &CategoryRepo{generic: repository[domain.Category]{
		tx:      tx,
		table:   "categories",
		columns: []string{"id", "name", "user_id"},
		scanRow: scanCategory,
	}}
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.UserID)
	return c, err
}

func (r *CategoryRepo) GetAll(ctx context.Context, filters ...repo.Filter) ([]domain.Category, error) {
	return r.generic.getAll(ctx, filters)
}

func (r *CategoryRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.Category, error) {
	return r.generic.getOne(ctx, filters)
}

func (r *CategoryRepo) AddOne(ctx context.Context, data domain.CategoryData) (domain.Category, error) {
	return r.generic.addOne(ctx, uuid.New(),
		[]string{"name", "user_id"},
		[]any{data.Name, data.UserID},
	)
}

func (r *CategoryRepo) UpdateOne(ctx context.Context, id uuid.UUID, data domain.CategoryData) (domain.Category, error) {
	return r.generic.updateOne(ctx, id,
		[]string{"name", "user_id"},
		[]any{data.Name, data.UserID},
	)
}

func (r *CategoryRepo) DeleteOne(ctx context.Context, id uuid.UUID) error {
	return r.generic.deleteOne(ctx, id)
}
