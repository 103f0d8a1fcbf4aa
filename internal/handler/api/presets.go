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

// CreatePresetSetRequest is the request body for creating a preset set.
type CreatePresetSetRequest struct {
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	TentSize    string    `json:"tent_size"`
	ProductIDs  []string  `json:"product_ids"`
	IsActive    *bool     `json:"is_active"`
	IsFeatured  *bool     `json:"is_featured"`
}

// UpdatePresetSetRequest is the request body for updating a preset set.
// Sending product_ids replaces the whole list.
type UpdatePresetSetRequest struct {
	Version     *int64     `json:"version,omitempty"`
	Name        *l10n.Text `json:"name,omitempty"`
	Description *l10n.Text `json:"description,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	TentSize    *string    `json:"tent_size,omitempty"`
	ProductIDs  *[]string  `json:"product_ids,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
}

// ListPresetSets handles GET /api/v1/presets.
func (h *Handler) ListPresetSets(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.presets, "presets")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(p model.PresetSet) bool { return p.IsActive }),
		boolFilter(r.URL.Query(), "featured", func(p model.PresetSet) bool { return p.IsFeatured }),
		stringFilter(r.URL.Query(), "tent_size", func(p model.PresetSet) string { return p.TentSize }),
	)
	listCollection(w, r, items, func(p model.PresetSet) []string {
		return []string{p.Name.Get(l10n.LangEN), p.Name.Get(l10n.LangTR), p.Slug, p.TentSize}
	}, preds...)
}

// GetPresetSet handles GET /api/v1/presets/{id}.
func (h *Handler) GetPresetSet(w http.ResponseWriter, r *http.Request) {
	preset, ok := requireRecord(w, r, h.presets, chi.URLParam(r, "id"), "preset")
	if !ok {
		return
	}
	WriteSuccess(w, preset, nil)
}

// checkPresetProducts verifies every referenced product exists.
func (h *Handler) checkPresetProducts(w http.ResponseWriter, r *http.Request, ids []string) bool {
	for _, id := range ids {
		if _, ok := requireRecord(w, r, h.products, id, "product"); !ok {
			return false
		}
	}
	return true
}

// CreatePresetSet handles POST /api/v1/presets.
func (h *Handler) CreatePresetSet(w http.ResponseWriter, r *http.Request) {
	var req CreatePresetSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	preset := model.DefaultPresetSet()
	if req.Name != nil {
		preset.Name = req.Name
	}
	if req.Description != nil {
		preset.Description = req.Description
	}
	preset.Slug = req.Slug
	preset.TentSize = req.TentSize
	if req.ProductIDs != nil {
		preset.ProductIDs = req.ProductIDs
	}
	if req.IsActive != nil {
		preset.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		preset.IsFeatured = *req.IsFeatured
	}
	if preset.Slug == "" {
		preset.Slug = util.Slugify(preset.Name.Get(l10n.DefaultLang))
	}

	if errs := preset.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.presets, preset.Slug, "") {
		return
	}
	if !h.checkPresetProducts(w, r, preset.ProductIDs) {
		return
	}

	if err := h.presets.Create(r.Context(), &preset); err != nil {
		writeStoreError(w, r, err, "preset")
		return
	}

	h.contentChanged(r.Context(), "preset created", middleware.GetUserEmail(r),
		map[string]any{"id": preset.ID, "slug": preset.Slug, "products": len(preset.ProductIDs)})
	WriteCreated(w, preset)
}

// UpdatePresetSet handles PUT /api/v1/presets/{id}.
func (h *Handler) UpdatePresetSet(w http.ResponseWriter, r *http.Request) {
	var req UpdatePresetSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.presets, *req.Slug, id) {
		return
	}
	if req.ProductIDs != nil && !h.checkPresetProducts(w, r, *req.ProductIDs) {
		return
	}

	preset, err := h.presets.Modify(r.Context(), id, func(p *model.PresetSet) error {
		if err := checkVersion(req.Version, p.Version); err != nil {
			return err
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Slug != nil {
			p.Slug = *req.Slug
		}
		if req.TentSize != nil {
			p.TentSize = *req.TentSize
		}
		if req.ProductIDs != nil {
			p.ProductIDs = *req.ProductIDs
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
		writeModifyError(w, r, err, "preset")
		return
	}

	h.contentChanged(r.Context(), "preset updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, preset, nil)
}

// DeletePresetSet handles DELETE /api/v1/presets/{id}?confirm=true.
func (h *Handler) DeletePresetSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.presets.Delete(r.Context(), id)
	}, "preset", id)
}
