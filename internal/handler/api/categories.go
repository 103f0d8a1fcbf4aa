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

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	ParentID    string    `json:"parent_id"`
	Position    int64     `json:"position"`
	IsActive    *bool     `json:"is_active"`
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Version     *int64     `json:"version,omitempty"`
	Name        *l10n.Text `json:"name,omitempty"`
	Description *l10n.Text `json:"description,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Position    *int64     `json:"position,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.categories, "categories")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(c model.Category) bool { return c.IsActive }),
		stringFilter(r.URL.Query(), "parent", func(c model.Category) string { return c.ParentID }),
	)
	listCollection(w, r, items, func(c model.Category) []string {
		return []string{c.Name.Get(l10n.LangEN), c.Name.Get(l10n.LangTR), c.Slug}
	}, preds...)
}

// GetCategory handles GET /api/v1/categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := requireRecord(w, r, h.categories, chi.URLParam(r, "id"), "category")
	if !ok {
		return
	}
	WriteSuccess(w, category, nil)
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category := model.DefaultCategory()
	if req.Name != nil {
		category.Name = req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	category.Slug = req.Slug
	category.ParentID = req.ParentID
	category.Position = req.Position
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if category.Slug == "" {
		category.Slug = util.Slugify(category.Name.Get(l10n.DefaultLang))
	}

	if errs := category.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.categories, category.Slug, "") {
		return
	}
	if req.ParentID != "" {
		if _, ok := requireRecord(w, r, h.categories, req.ParentID, "parent category"); !ok {
			return
		}
	}

	if err := h.categories.Create(r.Context(), &category); err != nil {
		writeStoreError(w, r, err, "category")
		return
	}

	h.contentChanged(r.Context(), "category created", middleware.GetUserEmail(r),
		map[string]any{"id": category.ID, "slug": category.Slug})
	WriteCreated(w, category)
}

// UpdateCategory handles PUT /api/v1/categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.categories, *req.Slug, id) {
		return
	}
	if req.ParentID != nil && *req.ParentID != "" {
		if *req.ParentID == id {
			WriteValidationError(w, map[string]string{"parent_id": "Category cannot be its own parent"})
			return
		}
		if _, ok := requireRecord(w, r, h.categories, *req.ParentID, "parent category"); !ok {
			return
		}
	}

	category, err := h.categories.Modify(r.Context(), id, func(c *model.Category) error {
		if err := checkVersion(req.Version, c.Version); err != nil {
			return err
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Slug != nil {
			c.Slug = *req.Slug
		}
		if req.ParentID != nil {
			c.ParentID = *req.ParentID
		}
		if req.Position != nil {
			c.Position = *req.Position
		}
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}
		if errs := c.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "category")
		return
	}

	h.contentChanged(r.Context(), "category updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, category, nil)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}?confirm=true.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.categories.Delete(r.Context(), id)
	}, "category", id)
}
