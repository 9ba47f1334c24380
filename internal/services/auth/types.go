package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials deliberately covers both "no such account" and
	// "wrong password" so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActive          = errors.New("account is not active")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// TokenPair is the credential pair issued on login and rotated on refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterParams struct {
	Name       string
	Email      string
	Password   string
	TelegramID *int64
}

// TokenStore holds the single live refresh token per user in the volatile
// store. Save must overwrite any previous value.
type TokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// LoginLimiter throttles credential checks per account identifier.
type LoginLimiter interface {
	AllowLogin(ctx context.Context, email string) (int64, bool, error)
}
