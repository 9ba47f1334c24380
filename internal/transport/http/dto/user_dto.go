package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
)

// UserResponse is the public projection of a user: the password digest
// and account flags never leave the service layer through it.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TelegramID *int64    `json:"telegram_id,omitempty"`
}

// UserDetailResponse is the owner's view of their own account.
type UserDetailResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TelegramID   *int64    `json:"telegram_id,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsVerified   bool      `json:"is_verified"`
}

type UpdateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TelegramID *int64 `json:"telegram_id,omitempty"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		TelegramID: u.TelegramID,
	}
}

func NewUserDetailResponse(u domain.User) UserDetailResponse {
	return UserDetailResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		TelegramID:   u.TelegramID,
		RegisteredAt: u.RegisteredAt,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		IsVerified:   u.IsVerified,
	}
}
