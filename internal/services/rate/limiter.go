package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const loginMinuteWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter caps login attempts per account inside a fixed one minute
// window. A zero perMinute disables the limiter.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowLogin reports whether another attempt for email may proceed and,
// when blocked, how many seconds remain until the window resets.
func (l *Limiter) AllowLogin(ctx context.Context, email string) (int64, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, false, fmt.Errorf("invalid email")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	if l.perMinute <= 0 {
		return 0, true, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(email), loginMinuteWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func minuteKey(email string) string {
	return "rate:login:min:" + email
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
