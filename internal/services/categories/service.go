// Package categories implements user-scoped category CRUD. Every operation
// resolves the addressed user first; a category owned by someone else is
// indistinguishable from a missing one.
package categories

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

func (s *Service) GetAll(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureUser(ctx, uow, userID); err != nil {
		return nil, err
	}

	items, err := uow.Categories().GetAll(ctx, repo.Eq("user_id", userID))
	if err != nil {
		return nil, translateErr("list categories", err)
	}

	return items, nil
}

func (s *Service) GetByID(ctx context.Context, userID, categoryID uuid.UUID) (domain.Category, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Category{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureUser(ctx, uow, userID); err != nil {
		return domain.Category{}, err
	}

	return ownedCategory(ctx, uow, userID, categoryID)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (domain.Category, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Category{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureUser(ctx, uow, userID); err != nil {
		return domain.Category{}, err
	}

	created, err := uow.Categories().AddOne(ctx, domain.CategoryData{Name: name, UserID: userID})
	if err != nil {
		return domain.Category{}, translateErr("create category", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.Category{}, translateErr("create category", err)
	}

	return created, nil
}

func (s *Service) UpdateByID(ctx context.Context, userID, categoryID uuid.UUID, name string) (domain.Category, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Category{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureUser(ctx, uow, userID); err != nil {
		return domain.Category{}, err
	}
	if _, err := ownedCategory(ctx, uow, userID, categoryID); err != nil {
		return domain.Category{}, err
	}

	updated, err := uow.Categories().UpdateOne(ctx, categoryID, domain.CategoryData{Name: name, UserID: userID})
	if err != nil {
		return domain.Category{}, translateErr("update category", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.Category{}, translateErr("update category", err)
	}

	return updated, nil
}

func (s *Service) DeleteByID(ctx context.Context, userID, categoryID uuid.UUID) error {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureUser(ctx, uow, userID); err != nil {
		return err
	}
	if _, err := ownedCategory(ctx, uow, userID, categoryID); err != nil {
		return err
	}

	if err := uow.Categories().DeleteOne(ctx, categoryID); err != nil {
		return translateErr("delete category", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return translateErr("delete category", err)
	}

	return nil
}

func ensureUser(ctx context.Context, uow repo.UnitOfWork, userID uuid.UUID) error {
	if _, err := uow.Users().GetOne(ctx, repo.Eq("id", userID)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %v: %w", err, domain.ErrInternal)
	}
	return nil
}

func ownedCategory(ctx context.Context, uow repo.UnitOfWork, userID, categoryID uuid.UUID) (domain.Category, error) {
	category, err := uow.Categories().GetOne(ctx, repo.Eq("id", categoryID), repo.Eq("user_id", userID))
	if err != nil {
		return domain.Category{}, translateErr("get category", err)
	}
	return category, nil
}

func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return domain.ErrCategoryNotFound
	case errors.Is(err, repo.ErrIntegrity):
		return domain.ErrBadRequest
	default:
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrInternal)
	}
}
