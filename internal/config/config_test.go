package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
env: prod
http:
  addr: ":9090"
postgres:
  category_delete_policy: restrict
auth:
  jwt_access_ttl: 5m
  login_per_minute: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %s", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Postgres.CategoryDeletePolicy != "restrict" {
		t.Fatalf("unexpected category delete policy: %s", cfg.Postgres.CategoryDeletePolicy)
	}
	if cfg.Auth.JWTAccessTTL != 5*time.Minute {
		t.Fatalf("unexpected access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Auth.LoginPerMinute != 3 {
		t.Fatalf("unexpected login rate: %d", cfg.Auth.LoginPerMinute)
	}

	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout default should stay 5s, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Auth.RefreshTTL != 720*time.Hour {
		t.Fatalf("refresh ttl default should stay 720h, got %s", cfg.Auth.RefreshTTL)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Postgres.CategoryDeletePolicy != "cascade" {
		t.Fatalf("unexpected default delete policy: %s", cfg.Postgres.CategoryDeletePolicy)
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("unexpected default access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REFRESH_TTL", "48h")
	t.Setenv("LOGIN_PER_MINUTE", "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.RefreshTTL != 48*time.Hour {
		t.Fatalf("unexpected refresh ttl: %s", cfg.Auth.RefreshTTL)
	}
	if cfg.Auth.LoginPerMinute != 1 {
		t.Fatalf("unexpected login rate: %d", cfg.Auth.LoginPerMinute)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid duration override")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"APP_ENV",
		"HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN", "CATEGORY_DELETE_POLICY",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ACCESS_TTL", "REFRESH_TTL", "LOGIN_PER_MINUTE",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
