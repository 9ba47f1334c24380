package expenses_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo/repotest"
	expensessvc "github.com/zen-techno/zen/internal/services/expenses"
)

func TestExpenseCRUD(t *testing.T) {
	store, user, category := newExpenseScope(t)
	svc := expensessvc.NewService(store)
	ctx := context.Background()

	stamp := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, user.ID, category.ID, expensessvc.Params{
		Name:          "lunch",
		Amount:        1200,
		TransactionAt: stamp,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if created.WhoPaidID != user.ID || created.CategoryID != category.ID {
		t.Fatalf("expense not bound to scope: %+v", created)
	}
	if !created.TransactionAt.Equal(stamp) {
		t.Fatalf("unexpected transaction time: %s", created.TransactionAt)
	}

	got, err := svc.GetByID(ctx, user.ID, category.ID, created.ID)
	if err != nil {
		t.Fatalf("get expense: %v", err)
	}
	if got.Amount != 1200 {
		t.Fatalf("unexpected amount: %d", got.Amount)
	}

	updated, err := svc.UpdateByID(ctx, user.ID, category.ID, created.ID, expensessvc.Params{
		Name:          "dinner",
		Amount:        2400,
		TransactionAt: stamp,
	})
	if err != nil {
		t.Fatalf("update expense: %v", err)
	}
	if updated.Name != "dinner" || updated.Amount != 2400 {
		t.Fatalf("unexpected expense after update: %+v", updated)
	}

	all, err := svc.GetAll(ctx, user.ID, category.ID)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("unexpected expense count: %d", len(all))
	}

	if err := svc.DeleteByID(ctx, user.ID, category.ID, created.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if _, err := svc.GetByID(ctx, user.ID, category.ID, created.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("deleted expense should be gone, got err=%v", err)
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	store, user, category := newExpenseScope(t)
	svc := expensessvc.NewService(store)
	ctx := context.Background()

	for _, amount := range []int64{0, -5} {
		if _, err := svc.Create(ctx, user.ID, category.ID, expensessvc.Params{
			Name:   "bad",
			Amount: amount,
		}); !errors.Is(err, domain.ErrBadRequest) {
			t.Fatalf("amount %d: got err=%v", amount, err)
		}
	}
}

func TestCreateDefaultsTransactionTime(t *testing.T) {
	store, user, category := newExpenseScope(t)
	svc := expensessvc.NewService(store)

	before := time.Now().UTC()
	created, err := svc.Create(context.Background(), user.ID, category.ID, expensessvc.Params{
		Name:   "coffee",
		Amount: 300,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if created.TransactionAt.Before(before) || created.TransactionAt.After(time.Now().UTC()) {
		t.Fatalf("transaction time not defaulted to now: %s", created.TransactionAt)
	}
}

func TestUnknownScopeIsResolvedInOrder(t *testing.T) {
	store, user, category := newExpenseScope(t)
	svc := expensessvc.NewService(store)
	ctx := context.Background()

	if _, err := svc.GetAll(ctx, uuid.New(), category.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown user: got err=%v", err)
	}
	if _, err := svc.GetAll(ctx, user.ID, uuid.New()); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("unknown category: got err=%v", err)
	}
	if _, err := svc.GetByID(ctx, user.ID, category.ID, uuid.New()); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("unknown expense: got err=%v", err)
	}
}

func TestForeignExpenseLooksMissing(t *testing.T) {
	store, user, category := newExpenseScope(t)
	svc := expensessvc.NewService(store)
	ctx := context.Background()

	other := store.SeedUser(domain.User{Name: "other", Email: "other@example.com", IsActive: true})
	otherCategory, err := addCategory(store, other.ID, "theirs")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}

	expense, err := svc.Create(ctx, user.ID, category.ID, expensessvc.Params{Name: "mine", Amount: 100})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if _, err := svc.GetByID(ctx, other.ID, otherCategory.ID, expense.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("foreign expense get: got err=%v", err)
	}
	if err := svc.DeleteByID(ctx, other.ID, otherCategory.ID, expense.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("foreign expense delete: got err=%v", err)
	}
}

func newExpenseScope(t *testing.T) (*repotest.Store, domain.User, domain.Category) {
	t.Helper()

	store := repotest.NewStore()
	user := store.SeedUser(domain.User{Name: "alice", Email: "alice@example.com", IsActive: true})

	category, err := addCategory(store, user.ID, "groceries")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}

	return store, user, category
}

func addCategory(store *repotest.Store, userID uuid.UUID, name string) (domain.Category, error) {
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	if err != nil {
		return domain.Category{}, err
	}

	category, err := uow.Categories().AddOne(ctx, domain.CategoryData{Name: name, UserID: userID})
	if err != nil {
		return domain.Category{}, err
	}

	return category, uow.Commit(ctx)
}
