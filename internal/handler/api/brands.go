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

// CreateBrandRequest is the request body for creating a brand.
type CreateBrandRequest struct {
	Name     l10n.Text `json:"name"`
	Slug     string    `json:"slug"`
	Color    string    `json:"color"`
	LogoURL  string    `json:"logo_url"`
	IsActive *bool     `json:"is_active"`
}

// UpdateBrandRequest is the request body for updating a brand. Absent
// fields keep their stored value. Version, when present, is the version
// the client last read; the update answers 409 if the record moved on.
type UpdateBrandRequest struct {
	Version  *int64     `json:"version,omitempty"`
	Name     *l10n.Text `json:"name,omitempty"`
	Slug     *string    `json:"slug,omitempty"`
	Color    *string    `json:"color,omitempty"`
	LogoURL  *string    `json:"logo_url,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// ListBrands handles GET /api/v1/brands.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.brands, "brands")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(b model.Brand) bool { return b.IsActive }),
	)
	listCollection(w, r, items, func(b model.Brand) []string {
		return []string{b.Name.Get(l10n.LangEN), b.Name.Get(l10n.LangTR), b.Slug}
	}, preds...)
}

// GetBrand handles GET /api/v1/brands/{id}.
func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, ok := requireRecord(w, r, h.brands, chi.URLParam(r, "id"), "brand")
	if !ok {
		return
	}
	WriteSuccess(w, brand, nil)
}

// CreateBrand handles POST /api/v1/brands.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	brand := model.DefaultBrand()
	if req.Name != nil {
		brand.Name = req.Name
	}
	brand.Slug = req.Slug
	brand.Color = req.Color
	brand.LogoURL = req.LogoURL
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if brand.Slug == "" {
		brand.Slug = util.Slugify(brand.Name.Get(l10n.DefaultLang))
	}

	if errs := brand.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.brands, brand.Slug, "") {
		return
	}

	if err := h.brands.Create(r.Context(), &brand); err != nil {
		writeStoreError(w, r, err, "brand")
		return
	}

	h.contentChanged(r.Context(), "brand created", middleware.GetUserEmail(r),
		map[string]any{"id": brand.ID, "slug": brand.Slug})
	WriteCreated(w, brand)
}

// UpdateBrand handles PUT /api/v1/brands/{id}. The request is merged over the
// stored record inside a transaction; a stale version answers 409.
func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.brands, *req.Slug, id) {
		return
	}

	brand, err := h.brands.Modify(r.Context(), id, func(b *model.Brand) error {
		if err := checkVersion(req.Version, b.Version); err != nil {
			return err
		}
		if req.Name != nil {
			b.Name = *req.Name
		}
		if req.Slug != nil {
			b.Slug = *req.Slug
		}
		if req.Color != nil {
			b.Color = *req.Color
		}
		if req.LogoURL != nil {
			b.LogoURL = *req.LogoURL
		}
		if req.IsActive != nil {
			b.IsActive = *req.IsActive
		}
		if errs := b.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "brand")
		return
	}

	h.contentChanged(r.Context(), "brand updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, brand, nil)
}

// DeleteBrand handles DELETE /api/v1/brands/{id}?confirm=true.
func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.brands.Delete(r.Context(), id)
	}, "brand", id)
}
