package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

type UserRepo struct {
	generic repository[domain.User]
}

func newUserRepo(tx pgx.Tx) *UserRepo {
	return &UserRepo{generic: repository[domain.User]{
		tx:    tx,
		table: "users",
		columns: []string{
			"id", "name", "email", "password_hash", "telegram_id",
			"registered_at", "is_active", "is_superuser", "is_verified",
		},
		scanRow: scanUser,
	}}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.TelegramID,
		&u.RegisteredAt, &u.IsActive, &u.IsSuperuser, &u.IsVerified,
	)
	return u, err
}

func (r *UserRepo) GetAll(ctx context.Context, filters ...repo.Filter) ([]domain.User, error) {
	return r.generic.getAll(ctx, filters)
}

func (r *UserRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.User, error) {
	return r.generic.getOne(ctx, filters)
}

func (r *UserRepo) AddOne(ctx context.Context, data domain.UserData) (domain.User, error) {
	return r.generic.addOne(ctx, uuid.New(),
		[]string{"name", "email", "password_hash", "telegram_id"},
		[]any{data.Name, data.Email, data.PasswordHash, data.TelegramID},
	)
}

func (r *UserRepo) UpdateOne(ctx context.Context, id uuid.UUID, data domain.UserUpdate) (domain.User, error) {
	return r.generic.updateOne(ctx, id,
		[]string{"name", "email", "telegram_id"},
		[]any{data.Name, data.Email, data.TelegramID},
	)
}

func (r *UserRepo) DeleteOne(ctx context.Context, id uuid.UUID) error {
	return r.generic.deleteOne(ctx, id)
}
