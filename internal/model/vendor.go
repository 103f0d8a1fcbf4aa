// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"

	"github.com/olegiv/groplan-go/internal/store"
)

// Vendor represents a supplier the shop sources products from. Vendor
// names are internal back-office data and are not localized.
type Vendor struct {
	store.Meta
	Code     string `json:"code"` // unique vendor code, e.g. "GG-TR"
	Name     string `json:"name"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	IsActive bool   `json:"is_active"`
}

// DefaultVendor returns the create-mode seed for a new vendor form.
func DefaultVendor() Vendor {
	return Vendor{IsActive: true}
}

// Validate checks the required fields before create/update.
func (v *Vendor) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "code", v.Code)
	if strings.TrimSpace(v.Name) == "" {
		errs["name"] = "Required"
	}
	return errs
}

// VendorProduct links a vendor's offer to a catalog product.
type VendorProduct struct {
	store.Meta
	VendorID  string  `json:"vendor_id"`  // references vendors
	ProductID string  `json:"product_id"` // references products
	VendorSKU string  `json:"vendor_sku"`
	Price     float64 `json:"price"`
	StockQty  int64   `json:"stock_qty"`
	IsActive  bool    `json:"is_active"`
}

// DefaultVendorProduct returns the create-mode seed for a new offer form.
func DefaultVendorProduct() VendorProduct {
	return VendorProduct{IsActive: true}
}

// Validate checks the required fields before create/update.
func (vp *VendorProduct) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "vendor_sku", vp.VendorSKU)
	if vp.VendorID == "" {
		errs["vendor_id"] = "Required"
	}
	if vp.ProductID == "" {
		errs["product_id"] = "Required"
	}
	if vp.Price < 0 {
		errs["price"] = "Must not be negative"
	}
	return errs
}
