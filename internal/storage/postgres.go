package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	xerrors "crmdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool. Queries are
// compiled to parameterized SQL; identifiers always come from the
// repositories' fixed column lists, never from request input.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Select(ctx context.Context, q *Query) ([]Row, int64, error) {
	total, err := s.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	sql, args := buildSelect(q)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, &xerrors.TransportError{Op: "select", Err: err}
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		r, err := rowToMap(rows)
		if err != nil {
			return nil, 0, &xerrors.TransportError{Op: "select", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &xerrors.TransportError{Op: "select", Err: err}
	}
	return out, total, nil
}

func (s *PostgresStore) SelectOne(ctx context.Context, q *Query) (Row, error) {
	one := *q
	one.Offset = 0
	one.Limit = 1

	sql, args := buildSelect(&one)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, &xerrors.TransportError{Op: "select", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &xerrors.TransportError{Op: "select", Err: err}
		}
		return nil, xerrors.ErrNotFound
	}
	r, err := rowToMap(rows)
	if err != nil {
		return nil, &xerrors.TransportError{Op: "select", Err: err}
	}
	return r, nil
}

func (s *PostgresStore) Count(ctx context.Context, q *Query) (int64, error) {
	where, args := buildWhere(q, 1)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s t", q.Collection)
	if where != "" {
		sql += " WHERE " + where
	}
	var total int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, &xerrors.TransportError{Op: "count", Err: err}
	}
	return total, nil
}

func (s *PostgresStore) Sum(ctx context.Context, q *Query, column string) (float64, error) {
	where, args := buildWhere(q, 1)
	sql := fmt.Sprintf("SELECT COALESCE(SUM(t.%s), 0) FROM %s t", column, q.Collection)
	if where != "" {
		sql += " WHERE " + where
	}
	var total float64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, &xerrors.TransportError{Op: "sum", Err: err}
	}
	return total, nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, row Row) (Row, error) {
	cols := sortedKeys(row)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		collection, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, writeErr("insert", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, writeErr("insert", err)
		}
		return nil, &xerrors.TransportError{Op: "insert", Err: errors.New("no row returned")}
	}
	return rowToMap(rows)
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, row Row) (Row, error) {
	if len(row) == 0 {
		// Nothing to change; behave like a read so callers still get the
		// not-found check.
		return s.SelectOne(ctx, NewQuery(collection).Where("id", id))
	}

	cols := sortedKeys(row)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		args = append(args, row[c])
	}
	args = append(args, id)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		collection, strings.Join(sets, ", "), len(cols)+1,
	)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, writeErr("update", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, writeErr("update", err)
		}
		return nil, xerrors.ErrNotFound
	}
	return rowToMap(rows)
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", collection), id)
	if err != nil {
		return &xerrors.TransportError{Op: "delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// writeErr maps backend faults on inserts and updates. Unique-constraint
// violations become ErrConflict; everything else stays a TransportError.
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrConflict
	}
	return &xerrors.TransportError{Op: op, Err: err}
}

// ---- SQL compilation ----

func buildWhere(q *Query, argStart int) (string, []any) {
	conditions := []string{}
	args := []any{}
	argPos := argStart

	for _, f := range q.Filters {
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", f.Field, argPos))
		args = append(args, f.Value)
		argPos++
	}

	if q.Search != nil {
		likes := make([]string, len(q.Search.Fields))
		for i, f := range q.Search.Fields {
			likes[i] = fmt.Sprintf("t.%s ILIKE $%d", f, argPos)
		}
		conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
		args = append(args, "%"+q.Search.Term+"%")
		argPos++
	}

	return strings.Join(conditions, " AND "), args
}

func buildSelect(q *Query) (string, []any) {
	cols := []string{"t.*"}
	join := ""
	if rel := q.Relation; rel != nil {
		for _, f := range rel.Fields {
			cols = append(cols, fmt.Sprintf("r.%s AS \"%s.%s\"", f, rel.Name, f))
		}
		join = fmt.Sprintf(" LEFT JOIN %s r ON t.%s = r.id", rel.Name, rel.ForeignKey)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s t%s", strings.Join(cols, ", "), q.Collection, join)

	where, args := buildWhere(q, 1)
	if where != "" {
		sql += " WHERE " + where
	}

	dir := "ASC"
	if q.OrderDesc {
		dir = "DESC"
	}
	sql += fmt.Sprintf(" ORDER BY t.%s %s", q.OrderField, dir)

	if q.Limit >= 0 {
		sql += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}
	return sql, args
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rowToMap(rows pgx.Rows) (Row, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	r := make(Row, len(fields))
	for i, fd := range fields {
		r[fd.Name] = values[i]
	}
	return r, nil
}
