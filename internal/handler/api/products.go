// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/util"
)

// CreateProductRequest is the request body for creating a product. Specs
// arrive as raw key/value rows from the editor; values are coerced to
// numbers and booleans where they parse as such.
type CreateProductRequest struct {
	Name        l10n.Text        `json:"name"`
	Description l10n.Text        `json:"description"`
	SKU         string           `json:"sku"`
	Slug        string           `json:"slug"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	BrandID     string           `json:"brand_id"`
	CategoryID  string           `json:"category_id"`
	ImageURL    string           `json:"image_url"`
	Specs       []model.SpecPair `json:"specs"`
	IsActive    *bool            `json:"is_active"`
	IsFeatured  *bool            `json:"is_featured"`
}

// UpdateProductRequest is the request body for updating a product. Absent
// fields keep their stored value; sending specs replaces the whole set.
type UpdateProductRequest struct {
	Version     *int64            `json:"version,omitempty"`
	Name        *l10n.Text        `json:"name,omitempty"`
	Description *l10n.Text        `json:"description,omitempty"`
	SKU         *string           `json:"sku,omitempty"`
	Slug        *string           `json:"slug,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Currency    *string           `json:"currency,omitempty"`
	BrandID     *string           `json:"brand_id,omitempty"`
	CategoryID  *string           `json:"category_id,omitempty"`
	ImageURL    *string           `json:"image_url,omitempty"`
	Specs       *[]model.SpecPair `json:"specs,omitempty"`
	IsActive    *bool             `json:"is_active,omitempty"`
	IsFeatured  *bool             `json:"is_featured,omitempty"`
}

// ListProducts handles GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.products, "products")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(p model.Product) bool { return p.IsActive }),
		boolFilter(r.URL.Query(), "featured", func(p model.Product) bool { return p.IsFeatured }),
		stringFilter(r.URL.Query(), "brand", func(p model.Product) string { return p.BrandID }),
		stringFilter(r.URL.Query(), "category", func(p model.Product) string { return p.CategoryID }),
	)
	listCollection(w, r, items, func(p model.Product) []string {
		return []string{p.Name.Get(l10n.LangEN), p.Name.Get(l10n.LangTR), p.SKU, p.Slug}
	}, preds...)
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := requireRecord(w, r, h.products, chi.URLParam(r, "id"), "product")
	if !ok {
		return
	}
	WriteSuccess(w, product, nil)
}

// checkProductRefs verifies optional brand/category references point at
// existing records. Writes 404 and returns false on a dangling reference.
func (h *Handler) checkProductRefs(w http.ResponseWriter, r *http.Request, brandID, categoryID string) bool {
	if brandID != "" {
		if _, ok := requireRecord(w, r, h.brands, brandID, "brand"); !ok {
			return false
		}
	}
	if categoryID != "" {
		if _, ok := requireRecord(w, r, h.categories, categoryID, "category"); !ok {
			return false
		}
	}
	return true
}

// CreateProduct handles POST /api/v1/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product := model.DefaultProduct()
	if req.Name != nil {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	product.SKU = req.SKU
	product.Slug = req.Slug
	product.Price = req.Price
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	product.BrandID = req.BrandID
	product.CategoryID = req.CategoryID
	product.ImageURL = req.ImageURL
	if req.Specs != nil {
		product.Specs = model.SpecsFromPairs(req.Specs)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name.Get(l10n.DefaultLang))
	}

	if errs := product.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.products, product.Slug, "") {
		return
	}
	if !h.checkProductRefs(w, r, product.BrandID, product.CategoryID) {
		return
	}

	if err := h.products.Create(r.Context(), &product); err != nil {
		writeStoreError(w, r, err, "product")
		return
	}

	h.contentChanged(r.Context(), "product created", middleware.GetUserEmail(r),
		map[string]any{"id": product.ID, "sku": product.SKU, "slug": product.Slug})
	WriteCreated(w, product)
}

// UpdateProduct handles PUT /api/v1/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.products, *req.Slug, id) {
		return
	}
	brandID, categoryID := "", ""
	if req.BrandID != nil {
		brandID = *req.BrandID
	}
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	if !h.checkProductRefs(w, r, brandID, categoryID) {
		return
	}

	product, err := h.products.Modify(r.Context(), id, func(p *model.Product) error {
		if err := checkVersion(req.Version, p.Version); err != nil {
			return err
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.SKU != nil {
			p.SKU = *req.SKU
		}
		if req.Slug != nil {
			p.Slug = *req.Slug
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Currency != nil {
			p.Currency = *req.Currency
		}
		if req.BrandID != nil {
			p.BrandID = *req.BrandID
		}
		if req.CategoryID != nil {
			p.CategoryID = *req.CategoryID
		}
		if req.ImageURL != nil {
			p.ImageURL = *req.ImageURL
		}
		if req.Specs != nil {
			p.Specs = model.SpecsFromPairs(*req.Specs)
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		if req.IsFeatured != nil {
			p.IsFeatured = *req.IsFeatured
		}
		if errs := p.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "product")
		return
	}

	h.contentChanged(r.Context(), "product updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, product, nil)
}

// DeleteProduct handles DELETE /api/v1/products/{id}?confirm=true.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.products.Delete(r.Context(), id)
	}, "product", id)
}
