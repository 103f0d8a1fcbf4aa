// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/seo"
	"github.com/olegiv/groplan-go/internal/store"
)

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.NewRobotsBuilder(seo.RobotsConfig{SiteURL: h.siteURL}).Build()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml, listing the public catalog pages in
// every supported language.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b := seo.NewSitemapBuilder(h.siteURL, l10n.Languages)

	products, _, err := h.products.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		WriteInternalError(w, "Failed to build sitemap")
		return
	}
	entries := make([]seo.Entry, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	b.AddProducts(entries)

	posts, _, err := h.posts.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		WriteInternalError(w, "Failed to build sitemap")
		return
	}
	entries = entries[:0]
	for _, p := range posts {
		if p.IsPublished {
			entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	b.AddPosts(entries)

	presets, _, err := h.presets.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		WriteInternalError(w, "Failed to build sitemap")
		return
	}
	entries = entries[:0]
	for _, p := range presets {
		if p.IsActive {
			entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	b.AddPresets(entries)

	schedules, _, err := h.schedules.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		WriteInternalError(w, "Failed to build sitemap")
		return
	}
	entries = entries[:0]
	for _, s := range schedules {
		if s.IsActive {
			entries = append(entries, seo.Entry{Slug: s.Slug, UpdatedAt: s.UpdatedAt})
		}
	}
	b.AddSchedules(entries)

	out, err := b.Build()
	if err != nil {
		WriteInternalError(w, "Failed to build sitemap")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
