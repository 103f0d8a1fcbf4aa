// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// PresetSet bundles a tent-size-matched selection of products the planner
// can offer as a one-click starting point.
type PresetSet struct {
	store.Meta
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	TentSize    string    `json:"tent_size"` // e.g. "60x60x140"
	ProductIDs  []string  `json:"product_ids"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
}

// DefaultPresetSet returns the create-mode seed for a new preset form.
func DefaultPresetSet() PresetSet {
	return PresetSet{
		Name:        l10n.New(),
		Description: l10n.New(),
		ProductIDs:  []string{},
		IsActive:    true,
		IsFeatured:  false,
	}
}

// Validate checks the required fields before create/update.
func (p *PresetSet) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "slug", p.Slug)
	requireLocalized(errs, "name", p.Name)
	return errs
}
