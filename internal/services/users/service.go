// Package users implements user CRUD on top of the unit of work.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

type Service struct {
	factory repo.Factory
}

func NewService(factory repo.Factory) *Service {
	return &Service{factory: factory}
}

// CreateParams carries an already-hashed password: digest handling belongs
// to the auth flow, persistence belongs here.
type CreateParams struct {
	Name         string
	Email        string
	PasswordHash string
	TelegramID   *int64
}

type UpdateParams struct {
	Name       string
	Email      string
	TelegramID *int64
}

func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, translateErr("list users", err)
	}

	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.Users().GetOne(ctx, repo.Eq("id", id))
	if err != nil {
		return domain.User{}, translateErr("get user", err)
	}

	return user, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (domain.User, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	created, err := uow.Users().AddOne(ctx, domain.UserData{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		TelegramID:   params.TelegramID,
	})
	if err != nil {
		return domain.User{}, translateErr("create user", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.User{}, translateErr("create user", err)
	}

	return created, nil
}

func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, params UpdateParams) (domain.User, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	updated, err := uow.Users().UpdateOne(ctx, id, domain.UserUpdate{
		Name:       params.Name,
		Email:      params.Email,
		TelegramID: params.TelegramID,
	})
	if err != nil {
		return domain.User{}, translateErr("update user", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.User{}, translateErr("update user", err)
	}

	return updated, nil
}

// DeleteByID removes the user; owned categories and expenses go with it
// via the store's cascade rules.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.Users().DeleteOne(ctx, id); err != nil {
		return translateErr("delete user", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return translateErr("delete user", err)
	}

	return nil
}

func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, repo.ErrIntegrity):
		return domain.ErrBadRequest
	default:
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrInternal)
	}
}
