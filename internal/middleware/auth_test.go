// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/session"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(testutil.TestLogger()); err != nil {
		panic(err)
	}
	m.Run()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsAnonymous(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(Auth(sm)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestAuthAllowsSession(t *testing.T) {
	sm := scs.New()
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyUserID, "some-id")
		Auth(sm)(okHandler()).ServeHTTP(w, r)
	})
	h = sm.LoadAndSave(h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func withUser(r *http.Request, role string) *http.Request {
	user := model.AdminUser{Role: role, Email: "ops@example.com", IsActive: true}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func TestRequireRoleHierarchy(t *testing.T) {
	tests := []struct {
		role    string
		minRole string
		want    int
	}{
		{model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{model.RoleAdmin, model.RoleEditor, http.StatusOK},
		{model.RoleEditor, model.RoleEditor, http.StatusOK},
		{model.RoleEditor, model.RoleAdmin, http.StatusForbidden},
		{"", model.RoleEditor, http.StatusForbidden},
	}
	for _, tt := range tests {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/users", nil), tt.role)
		rec := httptest.NewRecorder()
		RequireRole(tt.minRole)(okHandler()).ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("role %q against min %q: status = %d, want %d", tt.role, tt.minRole, rec.Code, tt.want)
		}
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole(model.RoleEditor)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetUserEmail(t *testing.T) {
	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), model.RoleAdmin)
	if got := GetUserEmail(req); got != "ops@example.com" {
		t.Errorf("GetUserEmail = %q", got)
	}
	if got := GetUserEmail(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("GetUserEmail without user = %q", got)
	}
}
