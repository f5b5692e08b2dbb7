// Package crud provides a generic PostgreSQL repository. Each entity package
// instantiates Repository with a Mapper describing its table layout and builds
// entity-specific queries on top.
package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

// ErrNotFound is returned when a row lookup misses.
var ErrNotFound = errors.New("entity not found")

// Mapper binds an entity type to its table layout.
type Mapper[T any] struct {
	// Table is the table name.
	Table string
	// Columns is the full select list, id first.
	Columns []string
	// Scan reads one row in Columns order.
	Scan func(row pgx.Row) (*T, error)
	// Insert returns the column names and values written on INSERT.
	// id and database-defaulted timestamps are omitted.
	Insert func(*T) ([]string, []interface{})
	// Update returns the column names and values written on UPDATE.
	Update func(*T) ([]string, []interface{})
}

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Repository implements get/list/create/update/delete for one entity type.
type Repository[T any] struct {
	pool *pgxpool.Pool
	m    Mapper[T]
}

func NewRepository[T any](pool *pgxpool.Pool, m Mapper[T]) *Repository[T] {
	return &Repository[T]{pool: pool, m: m}
}

func (r *Repository[T]) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Get fetches one row by id.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	row := r.conn(ctx).QueryRow(ctx, buildSelectByID(r.m.Table, r.m.Columns), id)
	entity, err := r.m.Scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", r.m.Table, id, err)
	}
	return entity, nil
}

// List returns one page of rows, newest first, plus the total row count.
func (r *Repository[T]) List(ctx context.Context, limit, offset int) ([]*T, int, error) {
	return r.ListWhere(ctx, "", nil, limit, offset)
}

// ListWhere returns one page of rows matching the given WHERE clause
// (placeholders $1..$n matching args), newest first, plus the total count of
// matching rows. An empty clause lists everything.
func (r *Repository[T]) ListWhere(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*T, int, error) {
	conn := r.conn(ctx)

	var total int
	if err := conn.QueryRow(ctx, buildCount(r.m.Table, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.m.Table, err)
	}

	query, pageArgs := buildSelectPage(r.m.Table, r.m.Columns, where, args, limit, offset)
	rows, err := conn.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.m.Table, err)
	}
	defer rows.Close()

	var entities []*T
	for rows.Next() {
		entity, err := r.m.Scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", r.m.Table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", r.m.Table, err)
	}

	return entities, total, nil
}

// Create inserts the entity and returns the stored row, including id and
// database-assigned timestamps.
func (r *Repository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	cols, vals := r.m.Insert(entity)
	query := buildInsert(r.m.Table, cols, r.m.Columns)

	row := r.conn(ctx).QueryRow(ctx, query, vals...)
	created, err := r.m.Scan(row)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.m.Table, err)
	}
	return created, nil
}

// Update rewrites the entity's updatable columns and returns the stored row.
func (r *Repository[T]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	cols, vals := r.m.Update(entity)
	query := buildUpdate(r.m.Table, cols, r.m.Columns)
	vals = append(vals, id)

	row := r.conn(ctx).QueryRow(ctx, query, vals...)
	updated, err := r.m.Scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s %d: %w", r.m.Table, id, err)
	}
	return updated, nil
}

// Delete removes one row by id.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.m.Table), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.m.Table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Query builders
// ---------------------------------------------------------------------------

func buildSelectByID(table string, columns []string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", strings.Join(columns, ", "), table)
}

func buildCount(table, where string) string {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if where != "" {
		query += " WHERE " + where
	}
	return query
}

func buildSelectPage(table string, columns []string, where string, args []interface{}, limit, offset int) (string, []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(columns, ", "), table)
	if where != "" {
		b.WriteString(" WHERE " + where)
	}
	fmt.Fprintf(&b, " ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	pageArgs := make([]interface{}, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, limit, offset)
	return b.String(), pageArgs
}

func buildInsert(table string, insertCols, returning []string) string {
	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table,
		strings.Join(insertCols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(returning, ", "),
	)
}

func buildUpdate(table string, updateCols, returning []string) string {
	assignments := make([]string, len(updateCols))
	for i, col := range updateCols {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		table,
		strings.Join(assignments, ", "),
		len(updateCols)+1,
		strings.Join(returning, ", "),
	)
}
