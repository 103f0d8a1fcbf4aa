// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/store"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func TestEventsCreateAssignsDefaults(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	events := store.NewEvents(db)
	ev := store.Event{
		Level:    store.EventLevelInfo,
		Category: store.EventCategoryAuth,
		Message:  "login",
		Actor:    "admin@example.com",
	}
	require.NoError(t, events.Create(ctx, &ev))
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, "{}", ev.Metadata)

	count, err := events.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEventsListNewestFirst(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	events := store.NewEvents(db)
	base := time.Now().UTC().Add(-time.Hour)
	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, events.Create(ctx, &store.Event{
			Level:     store.EventLevelInfo,
			Category:  store.EventCategorySystem,
			Message:   msg,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := events.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
}

func TestEventsPruneOlderThan(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	events := store.NewEvents(db)
	now := time.Now().UTC()
	require.NoError(t, events.Create(ctx, &store.Event{
		Level: store.EventLevelWarning, Category: store.EventCategorySystem,
		Message: "old", CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, events.Create(ctx, &store.Event{
		Level: store.EventLevelInfo, Category: store.EventCategorySystem,
		Message: "recent", CreatedAt: now,
	}))

	pruned, err := events.PruneOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	remaining, err := events.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}
