package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zen-techno/zen/internal/domain"
	"github.com/zen-techno/zen/internal/repo"
	"github.com/zen-techno/zen/internal/services/users"
)

// Service drives the credential/session state machine: registration,
// credential verification, token pair issuance, rotation and revocation.
type Service struct {
	users   *users.Service
	factory repo.Factory
	jwt     *JWTManager
	tokens  TokenStore
	limiter LoginLimiter
}

func NewService(userService *users.Service, factory repo.Factory, jwtManager *JWTManager, tokens TokenStore, limiter LoginLimiter) *Service {
	return &Service{
		users:   userService,
		factory: factory,
		jwt:     jwtManager,
		tokens:  tokens,
		limiter: limiter,
	}
}

// Register persists a new user. Only the bcrypt digest of the password is
// ever stored; uniqueness violations on email or telegram id surface as a
// bad request.
func (s *Service) Register(ctx context.Context, params RegisterParams) (domain.User, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	if name == "" || email == "" || params.Password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, users.CreateParams{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		TelegramID:   params.TelegramID,
	})
}

// Login verifies credentials and issues a fresh token pair. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return TokenPair{}, ErrInvalidInput
	}

	if s.limiter != nil {
		_, ok, err := s.limiter.AllowLogin(ctx, email)
		if err != nil {
			return TokenPair{}, fmt.Errorf("check login rate: %w", err)
		}
		if !ok {
			return TokenPair{}, ErrTooManyAttempts
		}
	}

	user, err := s.userByFilter(ctx, repo.Eq("email", email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, ErrNotActive
	}

	return s.issueTokenPair(ctx, user.ID)
}

// ValidateAccessToken checks signature and expiry and returns the subject.
func (s *Service) ValidateAccessToken(token string) (uuid.UUID, error) {
	return s.jwt.ParseAccessToken(token)
}

// Refresh rotates a token pair. The presented access token is decoded
// ignoring its expiry to recover the subject; the refresh token must be
// authentic, unexpired, bound to that access token and equal to the value
// currently stored for the user. Anything stored earlier is superseded by
// the new pair, so a refresh token survives exactly one use.
func (s *Service) Refresh(ctx context.Context, pair TokenPair) (TokenPair, error) {
	userID, err := s.jwt.ParseAccessSubject(pair.AccessToken)
	if err != nil {
		return TokenPair{}, err
	}

	if _, err := s.userByFilter(ctx, repo.Eq("id", userID)); err != nil {
		return TokenPair{}, err
	}

	if err := s.jwt.ValidateRefreshToken(pair.RefreshToken, pair.AccessToken); err != nil {
		return TokenPair{}, err
	}

	stored, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, fmt.Errorf("load stored refresh token: %w", err)
	}
	if stored != pair.RefreshToken {
		return TokenPair{}, ErrInvalidToken
	}

	return s.issueTokenPair(ctx, userID)
}

// Logout deletes the stored refresh token, ending the session. Calling it
// for an already-ended session is a no-op.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// GetByID returns the detail snapshot of the authenticated user.
func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return s.userByFilter(ctx, repo.Eq("id", userID))
}

func (s *Service) issueTokenPair(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	access, _, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(access)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, userID, refresh, s.jwt.RefreshTTL()); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) userByFilter(ctx context.Context, filter repo.Filter) (domain.User, error) {
	uow, err := s.factory.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.Users().GetOne(ctx, filter)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %v: %w", err, domain.ErrInternal)
	}

	return user, nil
}
