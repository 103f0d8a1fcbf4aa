// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// BlogPost represents an article on the marketing site. Content is
// markdown, rendered and sanitized at read time for the public surface.
type BlogPost struct {
	store.Meta
	Title           l10n.Text  `json:"title"`
	Excerpt         l10n.Text  `json:"excerpt"`
	Content         l10n.Text  `json:"content"`
	MetaTitle       l10n.Text  `json:"meta_title"`
	MetaDescription l10n.Text  `json:"meta_description"`
	Slug            string     `json:"slug"`
	CoverImageURL   string     `json:"cover_image_url"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// DefaultBlogPost returns the create-mode seed for a new post form.
// Posts start as drafts.
func DefaultBlogPost() BlogPost {
	return BlogPost{
		Title:           l10n.New(),
		Excerpt:         l10n.New(),
		Content:         l10n.New(),
		MetaTitle:       l10n.New(),
		MetaDescription: l10n.New(),
		IsPublished:     false,
	}
}

// Validate checks the required fields before create/update. A draft may
// carry a partially translated title; only the primary language is required.
func (p *BlogPost) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "slug", p.Slug)
	requireLocalized(errs, "title", p.Title)
	return errs
}
