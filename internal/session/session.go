// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager used by the
// admin API for login state and the operator's UI language.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Session keys. Everything the handlers stash lives under these.
const (
	KeyUserID = "user_id"
	KeyEmail  = "user_email"
	KeyRole   = "user_role"
	KeyLang   = "lang"
)

// New creates a session manager persisting to the sessions table when the
// database is SQLite. Other drivers fall back to the in-memory store, which
// is fine for a single instance but drops sessions on restart.
func New(db *sql.DB, driver string, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if driver == "sqlite" {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		// __Host- prefix binds the cookie to the host over HTTPS.
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}
