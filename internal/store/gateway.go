// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gateway provides typed CRUD over one named collection table. Every
// collection shares the same row shape (id, version, data JSON, timestamps);
// the entity payload is JSON-encoded into the data column, so the gateway is
// independent of entity shape while create/update calls stay checked against
// T at compile time.
type Gateway[T any, P RecordPtr[T]] struct {
	db    *sql.DB
	table string
}

// NewGateway creates a gateway for a registered collection table.
func NewGateway[T any, P RecordPtr[T]](db *sql.DB, table string) (*Gateway[T, P], error) {
	if !KnownTable(table) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return &Gateway[T, P]{db: db, table: table}, nil
}

// MustGateway is like NewGateway but panics on an unknown table. Intended
// for wiring with the compile-time table constants.
func MustGateway[T any, P RecordPtr[T]](db *sql.DB, table string) *Gateway[T, P] {
	g, err := NewGateway[T, P](db, table)
	if err != nil {
		panic(err)
	}
	return g
}

// Table returns the collection table name.
func (g *Gateway[T, P]) Table() string { return g.table }

// ListOptions control ordering and pagination for List. The zero value
// means newest first with no row limit.
type ListOptions struct {
	// OrderBy is a row column (id, version, created_at, updated_at) or an
	// entity JSON field name. Empty means created_at descending.
	OrderBy string
	Desc    bool
	Limit   int64
	Offset  int64
}

// rowColumns are the real columns usable in ORDER BY without json_extract.
var rowColumns = map[string]bool{
	"id":         true,
	"version":    true,
	"created_at": true,
	"updated_at": true,
}

// fieldNameRe restricts JSON field names used in ORDER BY expressions.
var fieldNameRe = regexp.MustCompile(`^[a-z0-9_.]+$`)

func (g *Gateway[T, P]) orderClause(opts ListOptions) (string, error) {
	if opts.OrderBy == "" {
		// Default ordering is by creation time, newest first.
		return " ORDER BY created_at DESC", nil
	}
	var expr string
	switch {
	case rowColumns[opts.OrderBy]:
		expr = opts.OrderBy
	case fieldNameRe.MatchString(opts.OrderBy):
		expr = fmt.Sprintf("json_extract(data, '$.%s')", opts.OrderBy)
	default:
		return "", fmt.Errorf("invalid order column %q", opts.OrderBy)
	}
	dir := " ASC"
	if opts.Desc {
		dir = " DESC"
	}
	return " ORDER BY " + expr + dir, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (g *Gateway[T, P]) scanRecord(row rowScanner) (P, error) {
	var (
		id, data             string
		version              int64
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &version, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning %s row: %w", g.table, err)
	}

	var entity T
	rec := P(&entity)
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, fmt.Errorf("decoding %s record %s: %w", g.table, id, err)
	}

	// The row columns are the source of truth for the gateway-owned fields.
	m := rec.Record()
	m.ID = id
	m.Version = version
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt
	return rec, nil
}

// List returns entities from the collection plus the total row count.
// The total counts the whole collection, not the returned page, so list
// views can report "n of m" alongside client-side filtering.
func (g *Gateway[T, P]) List(ctx context.Context, opts ListOptions) ([]T, int64, error) {
	order, err := g.orderClause(opts)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM " + g.table
	if err := g.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", g.table, err)
	}

	query := "SELECT id, version, data, created_at, updated_at FROM " + g.table + order
	var args []any
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, max(opts.Offset, 0))
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", g.table, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]T, 0)
	for rows.Next() {
		rec, err := g.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", g.table, err)
	}
	return items, total, nil
}

// GetByID returns a single entity or ErrNotFound.
func (g *Gateway[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	row := g.db.QueryRowContext(ctx,
		"SELECT id, version, data, created_at, updated_at FROM "+g.table+" WHERE id = ?", id)
	rec, err := g.scanRecord(row)
	if err != nil {
		return nil, err
	}
	return (*T)(rec), nil
}

// Create inserts a new entity. The id, version, and timestamps are assigned
// here and written back into the entity before it is returned to the caller.
func (g *Gateway[T, P]) Create(ctx context.Context, rec P) error {
	m := rec.Record()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Version = 1
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", g.table, err)
	}

	_, err = g.db.ExecContext(ctx,
		"INSERT INTO "+g.table+" (id, version, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.Version, string(data), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating %s record: %w", g.table, err)
	}
	return nil
}

// Update replaces the whole stored record. The entity's version must match
// the stored row or ErrStale is returned, so two operators editing the same
// record concurrently cannot silently overwrite each other.
func (g *Gateway[T, P]) Update(ctx context.Context, rec P) error {
	m := rec.Record()
	if m.ID == "" {
		return fmt.Errorf("updating %s record: missing id", g.table)
	}
	expected := m.Version
	m.Version = expected + 1
	m.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		m.Version = expected
		return fmt.Errorf("encoding %s record: %w", g.table, err)
	}

	res, err := g.db.ExecContext(ctx,
		"UPDATE "+g.table+" SET version = ?, data = ?, updated_at = ? WHERE id = ? AND version = ?",
		m.Version, string(data), m.UpdatedAt, m.ID, expected)
	if err != nil {
		m.Version = expected
		return fmt.Errorf("updating %s record %s: %w", g.table, m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		m.Version = expected
		return fmt.Errorf("updating %s record %s: %w", g.table, m.ID, err)
	}
	if affected == 0 {
		m.Version = expected
		var exists int64
		if err := g.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+g.table+" WHERE id = ?", m.ID).Scan(&exists); err != nil {
			return fmt.Errorf("updating %s record %s: %w", g.table, m.ID, err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrStale
	}
	return nil
}

// Modify is the enforced read-modify-write helper: it fetches the current
// record inside a transaction, applies fn to it, and stores the merged
// result. Partial edits must go through here rather than hand-rolling a
// fetch-then-Update at each call site.
func (g *Gateway[T, P]) Modify(ctx context.Context, id string, fn func(P) error) (*T, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("modifying %s record %s: %w", g.table, id, err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT id, version, data, created_at, updated_at FROM "+g.table+" WHERE id = ?", id)
	rec, err := g.scanRecord(row)
	if err != nil {
		return nil, err
	}

	if err := fn(rec); err != nil {
		return nil, err
	}

	m := rec.Record()
	m.ID = id // fn cannot reassign the identity
	expected := m.Version
	m.Version = expected + 1
	m.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding %s record: %w", g.table, err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE "+g.table+" SET version = ?, data = ?, updated_at = ? WHERE id = ? AND version = ?",
		m.Version, string(data), m.UpdatedAt, id, expected)
	if err != nil {
		return nil, fmt.Errorf("modifying %s record %s: %w", g.table, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("modifying %s record %s: %w", g.table, id, err)
	}
	if affected == 0 {
		return nil, ErrStale
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("modifying %s record %s: %w", g.table, id, err)
	}
	return (*T)(rec), nil
}

// Delete removes a record. Hard delete: dependent records holding this id in
// a relationship field are not cascaded, which is why every delete in the
// admin surface goes through an explicit confirmation step first.
func (g *Gateway[T, P]) Delete(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM "+g.table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s record %s: %w", g.table, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s record %s: %w", g.table, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FieldEquals counts records whose JSON field equals value, excluding
// excludeID when non-empty. Used for slug/sku/email uniqueness checks.
func (g *Gateway[T, P]) FieldEquals(ctx context.Context, field, value, excludeID string) (int64, error) {
	if !fieldNameRe.MatchString(field) {
		return 0, fmt.Errorf("invalid field name %q", field)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE json_extract(data, '$.%s') = ?", g.table, field)
	args := []any{value}
	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}
	var count int64
	if err := g.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("checking %s.%s: %w", g.table, field, err)
	}
	return count, nil
}

// FindByField returns the first record whose JSON field equals value, or
// ErrNotFound. Intended for unique human-readable keys (slug, sku, email).
func (g *Gateway[T, P]) FindByField(ctx context.Context, field, value string) (*T, error) {
	if !fieldNameRe.MatchString(field) {
		return nil, fmt.Errorf("invalid field name %q", field)
	}
	query := fmt.Sprintf(
		"SELECT id, version, data, created_at, updated_at FROM %s WHERE json_extract(data, '$.%s') = ? LIMIT 1",
		g.table, field)
	row := g.db.QueryRowContext(ctx, query, value)
	rec, err := g.scanRecord(row)
	if err != nil {
		return nil, err
	}
	return (*T)(rec), nil
}

// localizedPath builds the json_extract path for a localized field's
// language slot, e.g. name -> $.name.en.
func localizedPath(field, lang string) string {
	return strings.Join([]string{field, lang}, ".")
}

// FindByLocalizedField is FindByField against one language slot of a
// localized value, e.g. the English name.
func (g *Gateway[T, P]) FindByLocalizedField(ctx context.Context, field, lang, value string) (*T, error) {
	return g.FindByField(ctx, localizedPath(field, lang), value)
}
