package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zen-techno/zen/internal/repo"
)

// translateErr maps a pgx failure onto the repository error taxonomy while
// keeping the cause in the message. Class 23 covers unique, foreign-key and
// check constraint violations.
func translateErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%s: %s: %w", op, pgErr.Message, repo.ErrIntegrity)
	}

	return fmt.Errorf("%s: %v: %w", op, err, repo.ErrStore)
}
