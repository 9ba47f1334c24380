package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/zen-techno/zen/internal/services/auth"
)

const refreshPrefix = "refresh:"

// TokenRepo keeps the single live refresh token per user. Save overwrites
// unconditionally, which is the one place enforcing "at most one live
// refresh token per user". Keys expire together with the token itself.
type TokenRepo struct {
	client *goredis.Client
}

func NewTokenRepo(client *goredis.Client) *TokenRepo {
	return &TokenRepo{client: client}
}

func (r *TokenRepo) Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return authsvc.ErrInvalidInput
	}
	if ttl <= 0 {
		return authsvc.ErrInvalidInput
	}

	if err := r.client.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}

	return nil
}

func (r *TokenRepo) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}

	token, err := r.client.Get(ctx, refreshKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", authsvc.ErrTokenNotFound
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}

	return token, nil
}

func (r *TokenRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	return nil
}

func refreshKey(userID uuid.UUID) string {
	return refreshPrefix + userID.String()
}
