// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// Product represents one item of grow equipment in the catalog.
type Product struct {
	store.Meta
	Name        l10n.Text      `json:"name"`
	Description l10n.Text      `json:"description"`
	SKU         string         `json:"sku"`
	Slug        string         `json:"slug"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	BrandID     string         `json:"brand_id"`    // references brands, may be empty
	CategoryID  string         `json:"category_id"` // references categories, may be empty
	ImageURL    string         `json:"image_url"`
	Specs       map[string]any `json:"specs"` // per-type attributes: watts, dimensions, ...
	IsActive    bool           `json:"is_active"`
	IsFeatured  bool           `json:"is_featured"`
}

// DefaultProduct returns the create-mode seed for a new product form.
func DefaultProduct() Product {
	return Product{
		Name:        l10n.New(),
		Description: l10n.New(),
		Currency:    "USD",
		Specs:       make(map[string]any),
		IsActive:    true,
		IsFeatured:  false,
	}
}

// Validate checks the required fields before create/update.
func (p *Product) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "sku", p.SKU)
	requireKey(errs, "slug", p.Slug)
	requireLocalized(errs, "name", p.Name)
	if p.Price < 0 {
		errs["price"] = "Must not be negative"
	}
	return errs
}
