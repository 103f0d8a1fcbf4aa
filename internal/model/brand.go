// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// Brand represents a product brand shown on the site and managed in the
// back office.
type Brand struct {
	store.Meta
	Name     l10n.Text `json:"name"`
	Slug     string    `json:"slug"`
	Color    string    `json:"color"`    // hex accent color for badges, e.g. #10b981
	LogoURL  string    `json:"logo_url"` // populated from the uploads bucket
	IsActive bool      `json:"is_active"`
}

// DefaultBrand returns the create-mode seed for a new brand form.
func DefaultBrand() Brand {
	return Brand{
		Name:     l10n.New(),
		IsActive: true,
	}
}

// Validate checks the required fields before create/update.
func (b *Brand) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "slug", b.Slug)
	requireLocalized(errs, "name", b.Name)
	return errs
}
