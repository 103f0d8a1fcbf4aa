// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Events) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, db)), store.NewEvents(db)
}

func TestWarnForwardedToEventLog(t *testing.T) {
	log, events := newTestLogger(t)
	ctx := context.Background()

	log.Warn("upload rejected", "reason", "too large")

	got, err := events.List(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	ev := got[0]
	if ev.Level != model.EventLevelWarning {
		t.Errorf("level = %q", ev.Level)
	}
	if ev.Category != model.EventCategoryUpload {
		t.Errorf("category = %q", ev.Category)
	}
	if ev.Metadata != `{"reason":"too large"}` {
		t.Errorf("metadata = %q", ev.Metadata)
	}
}

func TestInfoNotForwarded(t *testing.T) {
	log, events := newTestLogger(t)

	log.Info("server listening", "addr", ":8080")

	count, err := events.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("info record landed in event log: %d events", count)
	}
}

func TestExplicitCategoryWins(t *testing.T) {
	log, events := newTestLogger(t)

	log.Error("something broke", "category", model.EventCategoryAuth)

	got, err := events.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != model.EventCategoryAuth {
		t.Fatalf("got %+v", got)
	}
	if got[0].Level != model.EventLevelError {
		t.Errorf("level = %q", got[0].Level)
	}
}
