package categories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
	"github.com/zen-techno/zen/internal/repo/repotest"
	categoriessvc "github.com/zen-techno/zen/internal/services/categories"
)

func TestCategoryCRUD(t *testing.T) {
	store := repotest.NewStore()
	svc := categoriessvc.NewService(store)
	ctx := context.Background()

	user := store.SeedUser(domain.User{Name: "alice", Email: "alice@example.com", IsActive: true})

	created, err := svc.Create(ctx, user.ID, "groceries")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.UserID != user.ID {
		t.Fatalf("category not bound to owner: %s", created.UserID)
	}

	got, err := svc.GetByID(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got.Name != "groceries" {
		t.Fatalf("unexpected name: %s", got.Name)
	}

	renamed, err := svc.UpdateByID(ctx, user.ID, created.ID, "food")
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if renamed.Name != "food" {
		t.Fatalf("unexpected name after update: %s", renamed.Name)
	}

	all, err := svc.GetAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("unexpected category count: %d", len(all))
	}

	if err := svc.DeleteByID(ctx, user.ID, created.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := svc.GetByID(ctx, user.ID, created.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("deleted category should be gone, got err=%v", err)
	}
}

func TestUnknownUserIsRejectedFirst(t *testing.T) {
	svc := categoriessvc.NewService(repotest.NewStore())
	ctx := context.Background()

	if _, err := svc.GetAll(ctx, uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("list for unknown user: got err=%v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("create for unknown user: got err=%v", err)
	}
}

func TestForeignCategoryLooksMissing(t *testing.T) {
	store := repotest.NewStore()
	svc := categoriessvc.NewService(store)
	ctx := context.Background()

	owner := store.SeedUser(domain.User{Name: "owner", Email: "owner@example.com", IsActive: true})
	other := store.SeedUser(domain.User{Name: "other", Email: "other@example.com", IsActive: true})

	category, err := svc.Create(ctx, owner.ID, "private")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := svc.GetByID(ctx, other.ID, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("foreign category get: got err=%v", err)
	}
	if _, err := svc.UpdateByID(ctx, other.ID, category.ID, "stolen"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("foreign category update: got err=%v", err)
	}
	if err := svc.DeleteByID(ctx, other.ID, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("foreign category delete: got err=%v", err)
	}
}

func TestDeleteRemovesCategoryExpenses(t *testing.T) {
	store := repotest.NewStore()
	svc := categoriessvc.NewService(store)
	ctx := context.Background()

	user := store.SeedUser(domain.User{Name: "alice", Email: "alice@example.com", IsActive: true})

	category, err := svc.Create(ctx, user.ID, "travel")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := uow.Expenses().AddOne(ctx, domain.ExpenseData{
		Name: "ticket", Amount: 5500, WhoPaidID: user.ID, CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := svc.DeleteByID(ctx, user.ID, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	check, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() {
		_ = check.Rollback(ctx)
	}()

	if _, err := check.Expenses().GetOne(ctx, repo.Eq("category_id", category.ID)); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expenses of a deleted category should be gone, got err=%v", err)
	}
}
