package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the full read-model snapshot of a user row. PasswordHash never
// leaves the service layer; transport DTOs decide what is exposed.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	TelegramID   *int64
	RegisteredAt time.Time
	IsActive     bool
	IsSuperuser  bool
	IsVerified   bool
}

type Category struct {
	ID     uuid.UUID
	Name   string
	UserID uuid.UUID
}

type Expense struct {
	ID            uuid.UUID
	Name          string
	Amount        int64
	TransactionAt time.Time
	WhoPaidID     uuid.UUID
	CategoryID    uuid.UUID
}

// UserData is the insert payload for a user.
type UserData struct {
	Name         string
	Email        string
	PasswordHash string
	TelegramID   *int64
}

// UserUpdate is the full-field update payload for a user. The password
// digest is managed by the auth flow and is not part of a profile update.
type UserUpdate struct {
	Name       string
	Email      string
	TelegramID *int64
}

type CategoryData struct {
	Name   string
	UserID uuid.UUID
}

type ExpenseData struct {
	Name          string
	Amount        int64
	TransactionAt time.Time
	WhoPaidID     uuid.UUID
	CategoryID    uuid.UUID
}
