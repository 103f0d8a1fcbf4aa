// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/session"
	"github.com/olegiv/groplan-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyUser ContextKey = "user"
	ContextKeyLang ContextKey = "lang"
)

// apiError mirrors the handler package's error envelope. Duplicated here
// to keep the middleware package free of a handler dependency.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	_ = json.NewEncoder(w).Encode(e)
}

// Auth creates middleware that requires an authenticated session. The API is
// consumed by a JS admin client, so failures answer 401 JSON rather than a
// login redirect.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), session.KeyUserID) == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", i18n.T(GetLang(r), "errors.unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current operator into the
// request context. Use after Auth. A session pointing at a deleted or
// deactivated account is destroyed and the request rejected.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	users := store.MustGateway[model.AdminUser](db, store.TableAdminUsers)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), session.KeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || !user.IsActive {
				_ = sm.Destroy(r.Context())
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", i18n.T(GetLang(r), "errors.unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current operator from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.AdminUser {
	user, ok := r.Context().Value(ContextKeyUser).(model.AdminUser)
	if !ok {
		return nil
	}
	return &user
}

// GetUserEmail returns the current operator's email, or "" if not logged in.
func GetUserEmail(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.Email
	}
	return ""
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum role. Roles are
// hierarchical: admin > editor, so RequireRole(editor) admits both.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", i18n.T(GetLang(r), "errors.unauthorized"))
				return
			}
			if roleLevel(user.Role) < minLevel {
				WriteAPIError(w, http.StatusForbidden, "forbidden", i18n.T(GetLang(r), "errors.forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for RequireRole(admin).
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}
