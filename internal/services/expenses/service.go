// Package expenses implements expense CRUD reachable only through a
// resolving user+category prefix: the user must exist and the category
// must belong to that user before any expense is read or written.
package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

type Service struct {
	factory repo.Factory
	now     func() time.Time
}

func NewService(factory repo.Factory) *Service {
	return &Service{factory: factory, now: time.Now}
}

type Params struct {
	Name   string
	Amount int64
	// TransactionAt defaults to the creation time when zero.
	TransactionAt time.Time
}

func (s *Service) GetAll(ctx context.Context, userID, categoryID uuid.UUID) ([]domain.Expense, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureScope(ctx, uow, userID, categoryID); err != nil {
		return nil, err
	}

	items, err := uow.Expenses().GetAll(ctx,
		repo.Eq("who_paid_id", userID),
		repo.Eq("category_id", categoryID),
	)
	if err != nil {
		return nil, translateErr("list expenses", err)
	}

	return items, nil
}

func (s *Service) GetByID(ctx context.Context, userID, categoryID, expenseID uuid.UUID) (domain.Expense, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureScope(ctx, uow, userID, categoryID); err != nil {
		return domain.Expense{}, err
	}

	return scopedExpense(ctx, uow, userID, categoryID, expenseID)
}

func (s *Service) Create(ctx context.Context, userID, categoryID uuid.UUID, params Params) (domain.Expense, error) {
	if params.Amount <= 0 {
		return domain.Expense{}, domain.ErrBadRequest
	}

	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureScope(ctx, uow, userID, categoryID); err != nil {
		return domain.Expense{}, err
	}

	created, err := uow.Expenses().AddOne(ctx, s.expenseData(userID, categoryID, params))
	if err != nil {
		return domain.Expense{}, translateErr("create expense", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.Expense{}, translateErr("create expense", err)
	}

	return created, nil
}

func (s *Service) UpdateByID(ctx context.Context, userID, categoryID, expenseID uuid.UUID, params Params) (domain.Expense, error) {
	if params.Amount <= 0 {
		return domain.Expense{}, domain.ErrBadRequest
	}

	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureScope(ctx, uow, userID, categoryID); err != nil {
		return domain.Expense{}, err
	}
	if _, err := scopedExpense(ctx, uow, userID, categoryID, expenseID); err != nil {
		return domain.Expense{}, err
	}

	updated, err := uow.Expenses().UpdateOne(ctx, expenseID, s.expenseData(userID, categoryID, params))
	if err != nil {
		return domain.Expense{}, translateErr("update expense", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return domain.Expense{}, translateErr("update expense", err)
	}

	return updated, nil
}

func (s *Service) DeleteByID(ctx context.Context, userID, categoryID, expenseID uuid.UUID) error {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ensureScope(ctx, uow, userID, categoryID); err != nil {
		return err
	}
	if _, err := scopedExpense(ctx, uow, userID, categoryID, expenseID); err != nil {
		return err
	}

	if err := uow.Expenses().DeleteOne(ctx, expenseID); err != nil {
		return translateErr("delete expense", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return translateErr("delete expense", err)
	}

	return nil
}

func (s *Service) expenseData(userID, categoryID uuid.UUID, params Params) domain.ExpenseData {
	transactionAt := params.TransactionAt
	if transactionAt.IsZero() {
		transactionAt = s.now().UTC()
	}

	return domain.ExpenseData{
		Name:          params.Name,
		Amount:        params.Amount,
		TransactionAt: transactionAt,
		WhoPaidID:     userID,
		CategoryID:    categoryID,
	}
}

func ensureScope(ctx context.Context, uow repo.UnitOfWork, userID, categoryID uuid.UUID) error {
	if _, err := uow.Users().GetOne(ctx, repo.Eq("id", userID)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %v: %w", err, domain.ErrInternal)
	}

	if _, err := uow.Categories().GetOne(ctx, repo.Eq("id", categoryID), repo.Eq("user_id", userID)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("get category: %v: %w", err, domain.ErrInternal)
	}

	return nil
}

func scopedExpense(ctx context.Context, uow repo.UnitOfWork, userID, categoryID, expenseID uuid.UUID) (domain.Expense, error) {
	expense, err := uow.Expenses().GetOne(ctx,
		repo.Eq("id", expenseID),
		repo.Eq("who_paid_id", userID),
		repo.Eq("category_id", categoryID),
	)
	if err != nil {
		return domain.Expense{}, translateErr("get expense", err)
	}
	return expense, nil
}

func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return domain.ErrExpenseNotFound
	case errors.Is(err, repo.ErrIntegrity):
		return domain.ErrBadRequest
	default:
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrInternal)
	}
}
