// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/auth"
	"github.com/olegiv/groplan-go/internal/filter"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
)

// CreateUserRequest is the request body for creating an operator account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Lang     string `json:"lang"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest is the request body for updating an operator account.
// A non-empty password replaces the stored hash.
type UpdateUserRequest struct {
	Version  *int64  `json:"version,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Lang     *string `json:"lang,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListUsers handles GET /api/v1/users. Admin only; hashes never leave the server.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.users, "users")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(u model.AdminUser) bool { return u.IsActive }),
		stringFilter(r.URL.Query(), "role", func(u model.AdminUser) string { return u.Role }),
	)
	items = filter.Search(items, r.URL.Query().Get("q"), func(u model.AdminUser) []string {
		return []string{u.Email, u.Name}
	})
	items = filter.Apply(items, preds...)

	page := parsePageParam(r)
	perPage := parsePerPageParam(r, 20, 100)
	out := make([]UserResponse, 0, perPage)
	for _, u := range paginate(items, page, perPage) {
		out = append(out, userToResponse(&u))
	}
	WriteSuccess(w, out, pageMeta(int64(len(items)), page, perPage))
}

// GetUser handles GET /api/v1/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRecord(w, r, h.users, chi.URLParam(r, "id"), "user")
	if !ok {
		return
	}
	WriteSuccess(w, userToResponse(user), nil)
}

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user := model.DefaultAdminUser()
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Name = req.Name
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Lang != "" {
		user.Lang = l10n.Normalize(req.Lang)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	errs := user.Validate()
	if len(req.Password) < auth.MinPasswordLength {
		errs["password"] = "Too short"
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkFieldUnique(w, r, h.users, "email", user.Email, "") {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Failed to hash password")
		return
	}
	user.PasswordHash = hash

	if err := h.users.Create(r.Context(), &user); err != nil {
		writeStoreError(w, r, err, "user")
		return
	}

	h.events.LogAuth(r.Context(), model.EventLevelInfo, "operator account created",
		middleware.GetUserEmail(r), r.RemoteAddr, map[string]any{"email": user.Email, "role": user.Role})
	WriteCreated(w, userToResponse(&user))
}

// UpdateUser handles PUT /api/v1/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Email != nil {
		*req.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		if !checkFieldUnique(w, r, h.users, "email", *req.Email, id) {
			return
		}
	}

	var hash string
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < auth.MinPasswordLength {
			WriteValidationError(w, map[string]string{"password": "Too short"})
			return
		}
		var err error
		hash, err = auth.HashPassword(*req.Password)
		if err != nil {
			WriteInternalError(w, "Failed to hash password")
			return
		}
	}

	user, err := h.users.Modify(r.Context(), id, func(u *model.AdminUser) error {
		if err := checkVersion(req.Version, u.Version); err != nil {
			return err
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.Lang != nil {
			u.Lang = l10n.Normalize(*req.Lang)
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if errs := u.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "user")
		return
	}

	h.events.LogAuth(r.Context(), model.EventLevelInfo, "operator account updated",
		middleware.GetUserEmail(r), r.RemoteAddr, map[string]any{"id": id})
	WriteSuccess(w, userToResponse(user), nil)
}

// DeleteUser handles DELETE /api/v1/users/{id}?confirm=true. An operator
// cannot delete their own account.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if actor := middleware.GetUser(r); actor != nil && actor.ID == id {
		WriteConflict(w, "self_delete", "Cannot delete your own account")
		return
	}
	h.deleteRecord(w, r, func() error {
		return h.users.Delete(r.Context(), id)
	}, "user", id)
}
