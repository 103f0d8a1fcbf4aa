// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"testing"
	"time"

	"github.com/olegiv/groplan-go/internal/testutil"
)

func TestNewDevMode(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := New(db, "sqlite", true)
	if sm == nil {
		t.Fatal("expected session manager to be non-nil")
	}
	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNewProductionMode(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := New(db, "sqlite", false)
	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNewSessionSettings(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := New(db, "sqlite", true)
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("expected 24h lifetime, got %v", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected HttpOnly cookies")
	}
}

func TestNewMemoryFallback(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	// Non-SQLite drivers get the in-memory store; the manager must still
	// come up with the same cookie settings.
	sm := New(db, "mysql", true)
	if sm == nil {
		t.Fatal("expected session manager to be non-nil")
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected HttpOnly cookies")
	}
}
