// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// Admin user roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser represents a back-office operator. The password hash is part of
// the persisted payload; API response types must never include it.
type AdminUser struct {
	store.Meta
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	Lang         string `json:"lang"` // admin UI language preference
	IsActive     bool   `json:"is_active"`
}

// DefaultAdminUser returns the create-mode seed for a new operator form.
func DefaultAdminUser() AdminUser {
	return AdminUser{
		Role:     RoleEditor,
		Lang:     l10n.DefaultLang,
		IsActive: true,
	}
}

// IsAdmin returns true for the full-access role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks the required fields before create/update.
func (u *AdminUser) Validate() FieldErrors {
	errs := make(FieldErrors)
	if strings.TrimSpace(u.Email) == "" {
		errs["email"] = "Required"
	} else if !strings.Contains(u.Email, "@") {
		errs["email"] = "Invalid email address"
	}
	if strings.TrimSpace(u.Name) == "" {
		errs["name"] = "Required"
	}
	if u.Role != RoleAdmin && u.Role != RoleEditor {
		errs["role"] = "Must be admin or editor"
	}
	if !l10n.IsSupported(u.Lang) {
		errs["lang"] = "Unsupported language"
	}
	return errs
}
