// Package repotest provides an in-memory repo.Factory for service and
// transport tests. It mirrors the store contract: snapshot isolation per
// unit of work, the shared error taxonomy, uniqueness and foreign-key
// checks, and cascade deletes.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
)

// Store holds the committed state. Begin hands out a copy, so work done
// inside a unit of work is invisible until Commit.
type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]domain.User
	categories map[uuid.UUID]domain.Category
	expenses   map[uuid.UUID]domain.Expense
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]domain.User),
		categories: make(map[uuid.UUID]domain.Category),
		expenses:   make(map[uuid.UUID]domain.Expense),
	}
}

func (s *Store) Begin(_ context.Context) (repo.UnitOfWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uow := &unitOfWork{
		store:      s,
		users:      cloneMap(s.users),
		categories: cloneMap(s.categories),
		expenses:   cloneMap(s.expenses),
	}
	uow.userRepo = &userRepo{uow: uow}
	uow.categoryRepo = &categoryRepo{uow: uow}
	uow.expenseRepo = &expenseRepo{uow: uow}

	return uow, nil
}

// SeedUser inserts a user into the committed state directly, bypassing
// the unit of work. Zero ID and RegisteredAt are filled in.
func (s *Store) SeedUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u

	return u
}

type unitOfWork struct {
	store *Store
	done  bool

	users      map[uuid.UUID]domain.User
	categories map[uuid.UUID]domain.Category
	expenses   map[uuid.UUID]domain.Expense

	userRepo     *userRepo
	categoryRepo *categoryRepo
	expenseRepo  *expenseRepo
}

func (u *unitOfWork) Users() repo.UserRepository          { return u.userRepo }
func (u *unitOfWork) Categories() repo.CategoryRepository { return u.categoryRepo }
func (u *unitOfWork) Expenses() repo.ExpenseRepository    { return u.expenseRepo }

func (u *unitOfWork) Commit(_ context.Context) error {
	if u.done {
		return nil
	}
	u.done = true

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.store.users = cloneMap(u.users)
	u.store.categories = cloneMap(u.categories)
	u.store.expenses = cloneMap(u.expenses)

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.done = true
	return nil
}

type userRepo struct {
	uow *unitOfWork
}

func (r *userRepo) GetAll(_ context.Context, filters ...repo.Filter) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.uow.users {
		if matchUser(u, filters) {
			out = append(out, u)
		}
	}
	sortByID(out, func(u domain.User) uuid.UUID { return u.ID })
	return out, nil
}

func (r *userRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.User, error) {
	all, err := r.GetAll(ctx, filters...)
	if err != nil {
		return domain.User{}, err
	}
	if len(all) == 0 {
		return domain.User{}, repo.ErrNotFound
	}
	return all[0], nil
}

func (r *userRepo) AddOne(_ context.Context, data domain.UserData) (domain.User, error) {
	if err := r.uow.uniqueEmail(data.Email, uuid.Nil); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.New(),
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		TelegramID:   data.TelegramID,
		IsActive:     true,
	}
	r.uow.users[u.ID] = u

	return u, nil
}

func (r *userRepo) UpdateOne(_ context.Context, id uuid.UUID, data domain.UserUpdate) (domain.User, error) {
	u, ok := r.uow.users[id]
	if !ok {
		return domain.User{}, repo.ErrNotFound
	}
	if err := r.uow.uniqueEmail(data.Email, id); err != nil {
		return domain.User{}, err
	}

	u.Name = data.Name
	u.Email = data.Email
	u.TelegramID = data.TelegramID
	r.uow.users[id] = u

	return u, nil
}

func (r *userRepo) DeleteOne(_ context.Context, id uuid.UUID) error {
	if _, ok := r.uow.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.uow.users, id)

	for cid, c := range r.uow.categories {
		if c.UserID == id {
			delete(r.uow.categories, cid)
		}
	}
	for eid, e := range r.uow.expenses {
		if e.WhoPaidID == id {
			delete(r.uow.expenses, eid)
		}
	}

	return nil
}

type categoryRepo struct {
	uow *unitOfWork
}

func (r *categoryRepo) GetAll(_ context.Context, filters ...repo.Filter) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.uow.categories {
		if matchCategory(c, filters) {
			out = append(out, c)
		}
	}
	sortByID(out, func(c domain.Category) uuid.UUID { return c.ID })
	return out, nil
}

func (r *categoryRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.Category, error) {
	all, err := r.GetAll(ctx, filters...)
	if err != nil {
		return domain.Category{}, err
	}
	if len(all) == 0 {
		return domain.Category{}, repo.ErrNotFound
	}
	return all[0], nil
}

func (r *categoryRepo) AddOne(_ context.Context, data domain.CategoryData) (domain.Category, error) {
	if _, ok := r.uow.users[data.UserID]; !ok {
		return domain.Category{}, fmt.Errorf("category user: %w", repo.ErrIntegrity)
	}

	c := domain.Category{
		ID:     uuid.New(),
		Name:   data.Name,
		UserID: data.UserID,
	}
	r.uow.categories[c.ID] = c

	return c, nil
}

func (r *categoryRepo) UpdateOne(_ context.Context, id uuid.UUID, data domain.CategoryData) (domain.Category, error) {
	c, ok := r.uow.categories[id]
	if !ok {
		return domain.Category{}, repo.ErrNotFound
	}
	if _, userOK := r.uow.users[data.UserID]; !userOK {
		return domain.Category{}, fmt.Errorf("category user: %w", repo.ErrIntegrity)
	}

	c.Name = data.Name
	c.UserID = data.UserID
	r.uow.categories[id] = c

	return c, nil
}

func (r *categoryRepo) DeleteOne(_ context.Context, id uuid.UUID) error {
	if _, ok := r.uow.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.uow.categories, id)

	for eid, e := range r.uow.expenses {
		if e.CategoryID == id {
			delete(r.uow.expenses, eid)
		}
	}

	return nil
}

type expenseRepo struct {
	uow *unitOfWork
}

func (r *expenseRepo) GetAll(_ context.Context, filters ...repo.Filter) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range r.uow.expenses {
		if matchExpense(e, filters) {
			out = append(out, e)
		}
	}
	sortByID(out, func(e domain.Expense) uuid.UUID { return e.ID })
	return out, nil
}

func (r *expenseRepo) GetOne(ctx context.Context, filters ...repo.Filter) (domain.Expense, error) {
	all, err := r.GetAll(ctx, filters...)
	if err != nil {
		return domain.Expense{}, err
	}
	if len(all) == 0 {
		return domain.Expense{}, repo.ErrNotFound
	}
	return all[0], nil
}

func (r *expenseRepo) AddOne(_ context.Context, data domain.ExpenseData) (domain.Expense, error) {
	if err := r.uow.checkExpense(data); err != nil {
		return domain.Expense{}, err
	}

	e := domain.Expense{
		ID:            uuid.New(),
		Name:          data.Name,
		Amount:        data.Amount,
		TransactionAt: data.TransactionAt,
		WhoPaidID:     data.WhoPaidID,
		CategoryID:    data.CategoryID,
	}
	r.uow.expenses[e.ID] = e

	return e, nil
}

func (r *expenseRepo) UpdateOne(_ context.Context, id uuid.UUID, data domain.ExpenseData) (domain.Expense, error) {
	e, ok := r.uow.expenses[id]
	if !ok {
		return domain.Expense{}, repo.ErrNotFound
	}
	if err := r.uow.checkExpense(data); err != nil {
		return domain.Expense{}, err
	}

	e.Name = data.Name
	e.Amount = data.Amount
	e.TransactionAt = data.TransactionAt
	e.WhoPaidID = data.WhoPaidID
	e.CategoryID = data.CategoryID
	r.uow.expenses[id] = e

	return e, nil
}

func (r *expenseRepo) DeleteOne(_ context.Context, id uuid.UUID) error {
	if _, ok := r.uow.expenses[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.uow.expenses, id)
	return nil
}

func (u *unitOfWork) uniqueEmail(email string, self uuid.UUID) error {
	for id, existing := range u.users {
		if id != self && existing.Email == email {
			return fmt.Errorf("users email unique: %w", repo.ErrIntegrity)
		}
	}
	return nil
}

func (u *unitOfWork) checkExpense(data domain.ExpenseData) error {
	if data.Amount <= 0 {
		return fmt.Errorf("expenses amount check: %w", repo.ErrIntegrity)
	}
	if _, ok := u.users[data.WhoPaidID]; !ok {
		return fmt.Errorf("expense payer: %w", repo.ErrIntegrity)
	}
	if _, ok := u.categories[data.CategoryID]; !ok {
		return fmt.Errorf("expense category: %w", repo.ErrIntegrity)
	}
	return nil
}

func matchUser(u domain.User, filters []repo.Filter) bool {
	for _, f := range filters {
		var have any
		switch f.Field {
		case "id":
			have = u.ID
		case "email":
			have = u.Email
		case "name":
			have = u.Name
		case "is_active":
			have = u.IsActive
		default:
			return false
		}
		if !valueEq(have, f.Value) {
			return false
		}
	}
	return true
}

func matchCategory(c domain.Category, filters []repo.Filter) bool {
	for _, f := range filters {
		var have any
		switch f.Field {
		case "id":
			have = c.ID
		case "user_id":
			have = c.UserID
		case "name":
			have = c.Name
		default:
			return false
		}
		if !valueEq(have, f.Value) {
			return false
		}
	}
	return true
}

func matchExpense(e domain.Expense, filters []repo.Filter) bool {
	for _, f := range filters {
		var have any
		switch f.Field {
		case "id":
			have = e.ID
		case "who_paid_id":
			have = e.WhoPaidID
		case "category_id":
			have = e.CategoryID
		case "name":
			have = e.Name
		default:
			return false
		}
		if !valueEq(have, f.Value) {
			return false
		}
	}
	return true
}

func valueEq(have, want any) bool {
	return have == want
}

func sortByID[T any](items []T, id func(T) uuid.UUID) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]).String() < id(items[j]).String()
	})
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
