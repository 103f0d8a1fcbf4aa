// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/groplan-go/internal/auth"
	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/service"
	"github.com/olegiv/groplan-go/internal/session"
)

// LoginRequest is the request body for POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the operator shape returned by login and /api/v1/me.
// The password hash never leaves the server.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Lang     string `json:"lang"`
	IsActive bool   `json:"is_active"`
}

func userToResponse(u *model.AdminUser) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Lang:     u.Lang,
		IsActive: u.IsActive,
	}
}

// Login handles POST /api/v1/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, i18n.T(lang, "errors.bad_request"), nil)
		return
	}

	clientIP := r.RemoteAddr

	if h.loginGuard != nil {
		if locked, remaining := h.loginGuard.IsAccountLocked(req.Email); locked {
			h.events.LogAuth(r.Context(), model.EventLevelWarning, "login attempt on locked account", req.Email, clientIP, nil)
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				i18n.T(lang, "errors.rate_limited"), map[string]string{"retry_after": remaining.String()})
			return
		}
	}

	user, err := h.users.FindByField(r.Context(), "email", req.Email)
	ok := false
	if err == nil {
		ok, _ = auth.CheckPassword(req.Password, user.PasswordHash)
	}
	if !ok {
		// Same answer for unknown email and wrong password.
		if h.loginGuard != nil {
			if locked, dur := h.loginGuard.RecordFailedAttempt(req.Email); locked {
				h.events.LogAuth(r.Context(), model.EventLevelWarning, "account locked after failed logins", req.Email, clientIP,
					map[string]any{"lock_duration": dur.String()})
			}
		}
		h.events.LogAuth(r.Context(), model.EventLevelWarning, "failed login", req.Email, clientIP, nil)
		WriteUnauthorized(w, i18n.T(lang, "auth.invalid_credentials"))
		return
	}

	if !user.IsActive {
		h.events.LogAuth(r.Context(), model.EventLevelWarning, "login on disabled account", req.Email, clientIP, nil)
		WriteError(w, http.StatusForbidden, "account_disabled", i18n.T(lang, "auth.account_disabled"), nil)
		return
	}

	// Fresh session token on privilege change.
	if err := h.sm.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "Failed to create session")
		return
	}
	h.sm.Put(r.Context(), session.KeyUserID, user.ID)
	h.sm.Put(r.Context(), session.KeyEmail, user.Email)
	h.sm.Put(r.Context(), session.KeyRole, user.Role)
	if user.Lang != "" {
		h.sm.Put(r.Context(), session.KeyLang, user.Lang)
	}

	if h.loginGuard != nil {
		h.loginGuard.RecordSuccessfulLogin(req.Email)
	}
	h.events.LogAuth(r.Context(), model.EventLevelInfo, "user logged in", user.Email, clientIP,
		service.WithUserAgent(nil, r.UserAgent()))
	slog.Info("login", "category", model.EventCategoryAuth, "email", user.Email)

	WriteSuccess(w, userToResponse(user), nil)
}

// Logout handles POST /api/v1/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	email := h.sm.GetString(r.Context(), session.KeyEmail)
	if err := h.sm.Destroy(r.Context()); err != nil {
		WriteInternalError(w, "Failed to destroy session")
		return
	}
	if email != "" {
		h.events.LogAuth(r.Context(), model.EventLevelInfo, "user logged out", email, r.RemoteAddr, nil)
	}
	WriteSuccess(w, map[string]string{"message": i18n.T(middleware.GetLang(r), "auth.logged_out")}, nil)
}

// Me handles GET /api/v1/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, i18n.T(middleware.GetLang(r), "errors.unauthorized"))
		return
	}
	WriteSuccess(w, userToResponse(user), nil)
}

// SetLanguageRequest is the request body for POST /api/v1/language.
type SetLanguageRequest struct {
	Lang string `json:"lang"`
}

// SetLanguage handles POST /api/v1/language: persists the operator's UI
// language to the session, cookie and account.
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !l10n.IsSupported(req.Lang) {
		WriteValidationError(w, map[string]string{"lang": "Unsupported language"})
		return
	}
	req.Lang = l10n.Normalize(req.Lang)

	h.sm.Put(r.Context(), session.KeyLang, req.Lang)
	middleware.SetLanguageCookie(w, req.Lang)

	if user := middleware.GetUser(r); user != nil {
		_, err := h.users.Modify(r.Context(), user.ID, func(u *model.AdminUser) error {
			u.Lang = req.Lang
			return nil
		})
		if err != nil {
			slog.Warn("failed to persist language preference", "error", err, "user", user.Email)
		}
	}

	WriteSuccess(w, map[string]string{"message": i18n.T(req.Lang, "auth.language_set"), "lang": req.Lang}, nil)
}
