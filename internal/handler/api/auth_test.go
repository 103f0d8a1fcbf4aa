// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/model"
)

// mustCreateUser seeds an operator account through the handler.
func mustCreateUser(t *testing.T, h *Handler, email, password, role string, active bool) UserResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.CreateUser(rec, jsonRequest(t, http.MethodPost, "/api/v1/users", CreateUserRequest{
		Email:    email,
		Name:     "Test Operator",
		Password: password,
		Role:     role,
		IsActive: &active,
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[UserResponse](t, rec).Data
}

// loginVia runs Login through the session middleware so session state works.
func loginVia(t *testing.T, h *Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/v1/login", LoginRequest{Email: email, Password: password})
	h.sm.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h := newTestHandler(t)
	mustCreateUser(t, h, "ops@groplan.test", "correct-horse", model.RoleAdmin, true)

	rec := loginVia(t, h, "Ops@Groplan.Test", "correct-horse")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeData[UserResponse](t, rec).Data
	assert.Equal(t, "ops@groplan.test", user.Email, "email comparison is case-insensitive")
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "login establishes a session")
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHandler(t)
	mustCreateUser(t, h, "ops@groplan.test", "correct-horse", model.RoleEditor, true)

	rec := loginVia(t, h, "ops@groplan.test", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown accounts get the same answer as wrong passwords.
	rec = loginVia(t, h, "nobody@groplan.test", "whatever")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	h := newTestHandler(t)
	mustCreateUser(t, h, "ops@groplan.test", "correct-horse", model.RoleEditor, false)

	rec := loginVia(t, h, "ops@groplan.test", "correct-horse")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "account_disabled", decodeError(t, rec).Code)
}

func TestLoginMissingFields(t *testing.T) {
	h := newTestHandler(t)

	rec := loginVia(t, h, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
	h.sm.LoadAndSave(http.HandlerFunc(h.Logout)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUserShortPassword(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CreateUser(rec, jsonRequest(t, http.MethodPost, "/api/v1/users", CreateUserRequest{
		Email:    "ops@groplan.test",
		Name:     "Test Operator",
		Password: "short",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "password")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	h := newTestHandler(t)
	mustCreateUser(t, h, "ops@groplan.test", "correct-horse", model.RoleEditor, true)

	rec := httptest.NewRecorder()
	h.CreateUser(rec, jsonRequest(t, http.MethodPost, "/api/v1/users", CreateUserRequest{
		Email:    "OPS@groplan.test",
		Name:     "Dup",
		Password: "correct-horse",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "email")
}

func TestListUsersNeverLeaksHashes(t *testing.T) {
	h := newTestHandler(t)
	mustCreateUser(t, h, "ops@groplan.test", "correct-horse", model.RoleEditor, true)

	rec := httptest.NewRecorder()
	h.ListUsers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "argon2id"))
	assert.NotContains(t, rec.Body.String(), "password_hash")
}
