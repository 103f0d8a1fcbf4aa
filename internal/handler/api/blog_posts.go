// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/util"
)

// CreateBlogPostRequest is the request body for creating a blog post.
// New posts always start as drafts; publishing is a separate update.
type CreateBlogPostRequest struct {
	Title           l10n.Text `json:"title"`
	Excerpt         l10n.Text `json:"excerpt"`
	Content         l10n.Text `json:"content"`
	MetaTitle       l10n.Text `json:"meta_title"`
	MetaDescription l10n.Text `json:"meta_description"`
	Slug            string    `json:"slug"`
	CoverImageURL   string    `json:"cover_image_url"`
}

// UpdateBlogPostRequest is the request body for updating a blog post.
type UpdateBlogPostRequest struct {
	Version         *int64     `json:"version,omitempty"`
	Title           *l10n.Text `json:"title,omitempty"`
	Excerpt         *l10n.Text `json:"excerpt,omitempty"`
	Content         *l10n.Text `json:"content,omitempty"`
	MetaTitle       *l10n.Text `json:"meta_title,omitempty"`
	MetaDescription *l10n.Text `json:"meta_description,omitempty"`
	Slug            *string    `json:"slug,omitempty"`
	CoverImageURL   *string    `json:"cover_image_url,omitempty"`
	IsPublished     *bool      `json:"is_published,omitempty"`
}

// ListBlogPosts handles GET /api/v1/posts.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.posts, "posts")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "published", func(p model.BlogPost) bool { return p.IsPublished }),
	)
	listCollection(w, r, items, func(p model.BlogPost) []string {
		return []string{p.Title.Get(l10n.LangEN), p.Title.Get(l10n.LangTR), p.Slug}
	}, preds...)
}

// GetBlogPost handles GET /api/v1/posts/{id}.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireRecord(w, r, h.posts, chi.URLParam(r, "id"), "post")
	if !ok {
		return
	}
	WriteSuccess(w, post, nil)
}

// CreateBlogPost handles POST /api/v1/posts.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post := model.DefaultBlogPost()
	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.Content != nil {
		post.Content = req.Content
	}
	if req.MetaTitle != nil {
		post.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = req.MetaDescription
	}
	post.Slug = req.Slug
	post.CoverImageURL = req.CoverImageURL
	if post.Slug == "" {
		post.Slug = util.Slugify(post.Title.Get(l10n.DefaultLang))
	}

	if errs := post.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.posts, post.Slug, "") {
		return
	}

	if err := h.posts.Create(r.Context(), &post); err != nil {
		writeStoreError(w, r, err, "post")
		return
	}

	h.contentChanged(r.Context(), "post created", middleware.GetUserEmail(r),
		map[string]any{"id": post.ID, "slug": post.Slug})
	WriteCreated(w, post)
}

// UpdateBlogPost handles PUT /api/v1/posts/{id}. Flipping is_published to true
// stamps published_at on the first publish; unpublishing keeps the stamp so
// a republish preserves the original date.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req UpdateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.posts, *req.Slug, id) {
		return
	}

	post, err := h.posts.Modify(r.Context(), id, func(p *model.BlogPost) error {
		if err := checkVersion(req.Version, p.Version); err != nil {
			return err
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Excerpt != nil {
			p.Excerpt = *req.Excerpt
		}
		if req.Content != nil {
			p.Content = *req.Content
		}
		if req.MetaTitle != nil {
			p.MetaTitle = *req.MetaTitle
		}
		if req.MetaDescription != nil {
			p.MetaDescription = *req.MetaDescription
		}
		if req.Slug != nil {
			p.Slug = *req.Slug
		}
		if req.CoverImageURL != nil {
			p.CoverImageURL = *req.CoverImageURL
		}
		if req.IsPublished != nil {
			if *req.IsPublished && !p.IsPublished && p.PublishedAt == nil {
				now := time.Now().UTC()
				p.PublishedAt = &now
			}
			p.IsPublished = *req.IsPublished
		}
		if errs := p.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "post")
		return
	}

	h.contentChanged(r.Context(), "post updated", middleware.GetUserEmail(r),
		map[string]any{"id": id, "published": post.IsPublished})
	WriteSuccess(w, post, nil)
}

// DeleteBlogPost handles DELETE /api/v1/posts/{id}?confirm=true.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.posts.Delete(r.Context(), id)
	}, "post", id)
}
