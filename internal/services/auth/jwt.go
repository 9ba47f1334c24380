package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// refreshClaims bind a refresh token to the access token it was issued
// alongside: at_hash is the base64url-encoded left half of the SHA-256 of
// the access token string.
type refreshClaims struct {
	AccessTokenHash string `json:"at_hash"`
	jwt.RegisteredClaims
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 720 * time.Hour
	}

	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *JWTManager) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("jwt secret is empty")
	}
	if userID == uuid.Nil {
		return "", time.Time{}, fmt.Errorf("invalid access token payload")
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.accessTTL)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

func (m *JWTManager) GenerateRefreshToken(accessToken string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("jwt secret is empty")
	}
	if strings.TrimSpace(accessToken) == "" {
		return "", fmt.Errorf("invalid refresh token payload")
	}

	now := m.now().UTC()
	claims := refreshClaims{
		AccessTokenHash: accessTokenHash(accessToken),
		RegisteredClaims: jwt.RegisteredClaims{
			// A fresh jti per mint keeps tokens issued within the same
			// second from colliding, so rotation always supersedes.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken verifies signature and expiry and returns the subject.
// Expiry failures are reported distinctly so callers can decide whether a
// refresh is worth attempting.
func (m *JWTManager) ParseAccessToken(raw string) (uuid.UUID, error) {
	return m.parseAccess(raw, false)
}

// ParseAccessSubject recovers the subject of an access token whose expiry
// is ignored. The signature is still verified: the refresh flow needs the
// subject of a stale but authentic token.
func (m *JWTManager) ParseAccessSubject(raw string) (uuid.UUID, error) {
	return m.parseAccess(raw, true)
}

func (m *JWTManager) parseAccess(raw string, ignoreExpiry bool) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, m.keyFunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}
	if token == nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, parseErr := uuid.Parse(claims.Subject)
	if parseErr != nil || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// ValidateRefreshToken verifies signature, expiry and the binding to the
// presented access token.
func (m *JWTManager) ValidateRefreshToken(raw, accessToken string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidToken
	}

	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if token == nil || !token.Valid {
		return ErrInvalidToken
	}

	want := accessTokenHash(accessToken)
	if subtle.ConstantTimeCompare([]byte(claims.AccessTokenHash), []byte(want)) != 1 {
		return ErrInvalidToken
	}

	return nil
}

func (m *JWTManager) keyFunc(_ *jwt.Token) (interface{}, error) {
	return m.secret, nil
}

func accessTokenHash(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return base64.RawURLEncoding.EncodeToString(sum[:len(sum)/2])
}
