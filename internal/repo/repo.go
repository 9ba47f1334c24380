// Package repo declares the data-access contract: per-entity repositories,
// the unit of work bounding one transaction, and the error taxonomy every
// store implementation must surface.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
)

var (
	// ErrNotFound means an existence check failed: the addressed record
	// is absent. Callers can rely on it being distinct from constraint
	// and infrastructure failures.
	ErrNotFound = errors.New("record not found")
	// ErrIntegrity means the store rejected a write because of a
	// uniqueness, foreign-key or check constraint.
	ErrIntegrity = errors.New("integrity violation")
	// ErrStore covers every other infrastructure-level failure.
	ErrStore = errors.New("store failure")
)

type Op string

const OpEq Op = "="

// Filter is one explicit field comparison. GetOne applies first-match
// semantics over the ordered filter list, so callers must pass filters
// expected to select at most one logical record.
type Filter struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

type UserRepository interface {
	GetAll(ctx context.Context, filters ...Filter) ([]domain.User, error)
	GetOne(ctx context.Context, filters ...Filter) (domain.User, error)
	AddOne(ctx context.Context, data domain.UserData) (domain.User, error)
	UpdateOne(ctx context.Context, id uuid.UUID, data domain.UserUpdate) (domain.User, error)
	DeleteOne(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	GetAll(ctx context.Context, filters ...Filter) ([]domain.Category, error)
	GetOne(ctx context.Context, filters ...Filter) (domain.Category, error)
	AddOne(ctx context.Context, data domain.CategoryData) (domain.Category, error)
	UpdateOne(ctx context.Context, id uuid.UUID, data domain.CategoryData) (domain.Category, error)
	DeleteOne(ctx context.Context, id uuid.UUID) error
}

type ExpenseRepository interface {
	GetAll(ctx context.Context, filters ...Filter) ([]domain.Expense, error)
	GetOne(ctx context.Context, filters ...Filter) (domain.Expense, error)
	AddOne(ctx context.Context, data domain.ExpenseData) (domain.Expense, error)
	UpdateOne(ctx context.Context, id uuid.UUID, data domain.ExpenseData) (domain.Expense, error)
	DeleteOne(ctx context.Context, id uuid.UUID) error
}

// UnitOfWork owns one transaction and the repositories sharing it.
// Rollback after Commit is a no-op, so `defer uow.Rollback(ctx)` is the
// unconditional cleanup path: a scope that never commits leaves the store
// unchanged.
type UnitOfWork interface {
	Users() UserRepository
	Categories() CategoryRepository
	Expenses() ExpenseRepository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory opens a fresh unit of work per logical operation.
type Factory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
