// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategoryUpload  = "upload"
	EventCategorySystem  = "system"
)

// Event is one audit log entry. Events are written by handler call sites
// (logins, deletes) and by the slog forwarding handler for WARN+ records.
// The type lives here rather than in model because it is a plain row, not
// a gateway collection entity.
type Event struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Actor     string    `json:"actor"`    // operator email, empty for system events
	Metadata  string    `json:"metadata"` // JSON object of extra attributes
	CreatedAt time.Time `json:"created_at"`
}

// Events provides access to the audit event log. The log is append-only
// from the application's point of view; old entries are pruned by the
// scheduler, not edited.
type Events struct {
	db *sql.DB
}

// NewEvents creates an event log store.
func NewEvents(db *sql.DB) *Events {
	return &Events{db: db}
}

// Create appends an event. A missing id or timestamp is assigned here.
func (e *Events) Create(ctx context.Context, ev *Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.Metadata == "" {
		ev.Metadata = "{}"
	}
	_, err := e.db.ExecContext(ctx,
		"INSERT INTO events (id, level, category, message, actor, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		ev.ID, ev.Level, ev.Category, ev.Message, ev.Actor, ev.Metadata, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// List returns events newest first.
func (e *Events) List(ctx context.Context, limit, offset int64) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := e.db.QueryContext(ctx,
		"SELECT id, level, category, message, actor, metadata, created_at FROM events ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]Event, 0, limit)
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.Actor, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Count returns the total number of events.
func (e *Events) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// PruneOlderThan deletes events created before cutoff and returns how many
// were removed.
func (e *Events) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := e.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return affected, nil
}
