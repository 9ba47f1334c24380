package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zen-techno/zen/internal/repo"
)

// repository implements the generic CRUD surface for one table. Each entity
// kind instantiates it with its table name, column list and row-scan
// function; the per-entity repos add the typed methods on top.
type repository[T any] struct {
	tx      pgx.Tx
	table   string
	columns []string
	scanRow func(pgx.Row) (T, error)
}

func (r repository[T]) getAll(ctx context.Context, filters []repo.Filter) ([]T, error) {
	query, args := r.selectQuery(filters, false)
	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr("select "+r.table, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, translateErr("scan "+r.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr("iterate "+r.table, err)
	}

	return items, nil
}

func (r repository[T]) getOne(ctx context.Context, filters []repo.Filter) (T, error) {
	var zero T

	query, args := r.selectQuery(filters, true)
	item, err := r.scanRow(r.tx.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, translateErr("select "+r.table, err)
	}

	return item, nil
}

func (r repository[T]) addOne(ctx context.Context, id uuid.UUID, cols []string, vals []any) (T, error) {
	var zero T

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + r.table + " (id")
	for _, col := range cols {
		sb.WriteString(", " + col)
	}
	sb.WriteString(") VALUES ($1")
	for i := range cols {
		sb.WriteString(", $" + strconv.Itoa(i+2))
	}
	sb.WriteString(") RETURNING " + strings.Join(r.columns, ", "))

	args := append([]any{id}, vals...)
	item, err := r.scanRow(r.tx.QueryRow(ctx, sb.String(), args...))
	if err != nil {
		return zero, translateErr("insert "+r.table, err)
	}

	return item, nil
}

func (r repository[T]) updateOne(ctx context.Context, id uuid.UUID, cols []string, vals []any) (T, error) {
	var zero T

	// Existence is checked before the mutation so "no such row" surfaces
	// as not-found instead of being conflated with constraint failures.
	if err := r.exists(ctx, id); err != nil {
		return zero, err
	}

	var sb strings.Builder
	sb.WriteString("UPDATE " + r.table + " SET ")
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col + " = $" + strconv.Itoa(i+2))
	}
	sb.WriteString(" WHERE id = $1 RETURNING " + strings.Join(r.columns, ", "))

	args := append([]any{id}, vals...)
	item, err := r.scanRow(r.tx.QueryRow(ctx, sb.String(), args...))
	if err != nil {
		return zero, translateErr("update "+r.table, err)
	}

	return item, nil
}

func (r repository[T]) deleteOne(ctx context.Context, id uuid.UUID) error {
	if err := r.exists(ctx, id); err != nil {
		return err
	}

	if _, err := r.tx.Exec(ctx, "DELETE FROM "+r.table+" WHERE id = $1", id); err != nil {
		return translateErr("delete "+r.table, err)
	}

	return nil
}

func (r repository[T]) exists(ctx context.Context, id uuid.UUID) error {
	var found uuid.UUID
	err := r.tx.QueryRow(ctx, "SELECT id FROM "+r.table+" WHERE id = $1", id).Scan(&found)
	if err != nil {
		return translateErr("check "+r.table, err)
	}
	return nil
}

// selectQuery renders the filter list into a WHERE clause. Results are
// ordered by id so first-match semantics stay deterministic.
func (r repository[T]) selectQuery(filters []repo.Filter, one bool) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + strings.Join(r.columns, ", ") + " FROM " + r.table)

	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		op := f.Op
		if op == "" {
			op = repo.OpEq
		}
		sb.WriteString(f.Field + " " + string(op) + " $" + strconv.Itoa(i+1))
		args = append(args, f.Value)
	}

	sb.WriteString(" ORDER BY id")
	if one {
		sb.WriteString(" LIMIT 1")
	}

	return sb.String(), args
}
