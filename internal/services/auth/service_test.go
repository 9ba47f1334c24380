package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/zen-techno/zen/internal/domain"
	redrepo "github.com/zen-techno/zen/internal/repo/redis"
	"github.com/zen-techno/zen/internal/repo/repotest"
	authsvc "github.com/zen-techno/zen/internal/services/auth"
	ratesvc "github.com/zen-techno/zen/internal/services/rate"
	userssvc "github.com/zen-techno/zen/internal/services/users"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	user, err := env.svc.Register(ctx, authsvc.RegisterParams{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := env.svc.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	userID, err := env.svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("unexpected subject: got %s want %s", userID, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	if _, err := env.svc.Register(ctx, authsvc.RegisterParams{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "correct",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassErr := env.svc.Login(ctx, "bob@example.com", "wrong")
	if !errors.Is(wrongPassErr, authsvc.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got err=%v", wrongPassErr)
	}

	_, missingErr := env.svc.Login(ctx, "nobody@example.com", "whatever")
	if !errors.Is(missingErr, authsvc.ErrInvalidCredentials) {
		t.Fatalf("missing account: got err=%v", missingErr)
	}
	// A caller must not be able to tell the two cases apart.
	if wrongPassErr.Error() != missingErr.Error() {
		t.Fatalf("errors should be indistinguishable: %q vs %q", wrongPassErr, missingErr)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	env.store.SeedUser(domain.User{
		Name:         "carol",
		Email:        "carol@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	})

	if _, err := env.svc.Login(ctx, "carol@example.com", "s3cret"); !errors.Is(err, authsvc.ErrNotActive) {
		t.Fatalf("inactive account login: got err=%v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	pair := registerAndLogin(t, env, "dave@example.com")

	rotated, err := env.svc.Refresh(ctx, pair)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := env.svc.Refresh(ctx, pair); !errors.Is(err, authsvc.ErrInvalidToken) {
		t.Fatalf("replayed refresh token should be invalid, got err=%v", err)
	}

	if _, err := env.svc.ValidateAccessToken(rotated.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestSecondLoginSupersedesFirstSession(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	first := registerAndLogin(t, env, "erin@example.com")

	second, err := env.svc.Login(ctx, "erin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if _, err := env.svc.Refresh(ctx, first); !errors.Is(err, authsvc.ErrInvalidToken) {
		t.Fatalf("superseded session refresh should be invalid, got err=%v", err)
	}
	if _, err := env.svc.Refresh(ctx, second); err != nil {
		t.Fatalf("live session refresh: %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	ctx := context.Background()

	pair := registerAndLogin(t, env, "frank@example.com")

	userID, err := env.svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}

	if err := env.svc.Logout(ctx, userID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// Logging out twice is fine.
	if err := env.svc.Logout(ctx, userID); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}

	if _, err := env.svc.Refresh(ctx, pair); !errors.Is(err, authsvc.ErrInvalidToken) {
		t.Fatalf("refresh after logout should be invalid, got err=%v", err)
	}
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	env := newAuthEnv(t, time.Millisecond)
	ctx := context.Background()

	pair := registerAndLogin(t, env, "grace@example.com")

	time.Sleep(5 * time.Millisecond)
	if _, err := env.svc.ValidateAccessToken(pair.AccessToken); !errors.Is(err, authsvc.ErrExpiredToken) {
		t.Fatalf("access token should have expired, got err=%v", err)
	}

	if _, err := env.svc.Refresh(ctx, pair); err != nil {
		t.Fatalf("refresh with expired access token: %v", err)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := newAuthEnv(t, 15*time.Minute)
	env.svc = authsvc.NewService(
		env.users,
		env.store,
		authsvc.NewJWTManager("test-secret", 15*time.Minute, time.Hour),
		env.tokens,
		ratesvc.NewLimiter(redrepo.NewRateRepo(env.client), 2),
	)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := env.svc.Login(ctx, "henry@example.com", "wrong"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got err=%v", i, err)
		}
	}

	if _, err := env.svc.Login(ctx, "henry@example.com", "wrong"); !errors.Is(err, authsvc.ErrTooManyAttempts) {
		t.Fatalf("third attempt should be throttled, got err=%v", err)
	}
}

type authEnv struct {
	svc    *authsvc.Service
	users  *userssvc.Service
	store  *repotest.Store
	tokens *redrepo.TokenRepo
	client *goredis.Client
}

func newAuthEnv(t *testing.T, accessTTL time.Duration) *authEnv {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	store := repotest.NewStore()
	users := userssvc.NewService(store)
	tokens := redrepo.NewTokenRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", accessTTL, time.Hour)

	return &authEnv{
		svc:    authsvc.NewService(users, store, jwtManager, tokens, nil),
		users:  users,
		store:  store,
		tokens: tokens,
		client: client,
	}
}

func registerAndLogin(t *testing.T, env *authEnv, email string) authsvc.TokenPair {
	t.Helper()

	ctx := context.Background()
	if _, err := env.svc.Register(ctx, authsvc.RegisterParams{
		Name:     "user",
		Email:    email,
		Password: "s3cret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := env.svc.Login(ctx, email, "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	return pair
}
