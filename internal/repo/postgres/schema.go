package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DeleteCascade  = "cascade"
	DeleteRestrict = "restrict"
)

// SchemaOptions carries the one deliberately configurable piece of the
// schema: what happens to expenses when their category is deleted.
// User deletes always cascade to owned categories and expenses.
type SchemaOptions struct {
	CategoryDeletePolicy string
}

// Migrate applies the schema. Statements are idempotent so it is safe to
// run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, opts SchemaOptions) error {
	if pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	policy, err := categoryDeleteAction(opts.CategoryDeletePolicy)
	if err != nil {
		return err
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			telegram_id BIGINT UNIQUE,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories (user_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			amount BIGINT NOT NULL CHECK (amount > 0),
			transaction_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			who_paid_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES categories (id) ON DELETE %s
		)`, policy),
		`CREATE INDEX IF NOT EXISTS idx_expenses_who_paid_id ON expenses (who_paid_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses (category_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

func categoryDeleteAction(policy string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", DeleteCascade:
		return "CASCADE", nil
	case DeleteRestrict:
		return "RESTRICT", nil
	default:
		return "", fmt.Errorf("unknown category delete policy %q", policy)
	}
}
