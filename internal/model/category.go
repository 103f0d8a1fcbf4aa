// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// Category represents a product category (tents, lights, nutrients, ...).
type Category struct {
	store.Meta
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	ParentID    string    `json:"parent_id"` // empty for top-level categories
	Position    int64     `json:"position"`  // sort order in navigation
	IsActive    bool      `json:"is_active"`
}

// DefaultCategory returns the create-mode seed for a new category form.
func DefaultCategory() Category {
	return Category{
		Name:        l10n.New(),
		Description: l10n.New(),
		IsActive:    true,
	}
}

// Validate checks the required fields before create/update.
func (c *Category) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "slug", c.Slug)
	requireLocalized(errs, "name", c.Name)
	return errs
}
