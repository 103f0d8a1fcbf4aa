// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/cache"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/render"
	"github.com/olegiv/groplan-go/internal/store"
)

// publicCacheTTL bounds staleness of the public read side; mutations also
// clear the cache so hits after an edit are fresh.
const publicCacheTTL = 5 * time.Minute

// publicLang resolves the {lang} URL segment, falling back to the default
// language for anything unsupported.
func publicLang(r *http.Request) string {
	return l10n.Normalize(chi.URLParam(r, "lang"))
}

// PublicProduct is the language-resolved product shape for storefronts.
type PublicProduct struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SKU         string         `json:"sku"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Brand       string         `json:"brand,omitempty"`
	Category    string         `json:"category,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	Specs       map[string]any `json:"specs,omitempty"`
	IsFeatured  bool           `json:"is_featured"`
}

// PublicBrand is the language-resolved brand shape.
type PublicBrand struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// PublicCategory is the language-resolved category shape.
type PublicCategory struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentSlug  string `json:"parent_slug,omitempty"`
	Position    int64  `json:"position"`
}

// PublicPreset is the language-resolved preset shape.
type PublicPreset struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TentSize    string   `json:"tent_size,omitempty"`
	Products    []string `json:"products"` // product slugs
	IsFeatured  bool     `json:"is_featured"`
}

// PublicScheduleItem is one dose row in a public feeding schedule.
type PublicScheduleItem struct {
	Product      string  `json:"product"` // product slug
	Week         int64   `json:"week"`
	DosePerLiter float64 `json:"dose_per_liter"`
	Note         string  `json:"note,omitempty"`
}

// PublicSchedule is the language-resolved feeding schedule shape.
type PublicSchedule struct {
	Slug        string               `json:"slug"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	WeekCount   int64                `json:"week_count"`
	Items       []PublicScheduleItem `json:"items"`
}

// PublicPost is the language-resolved blog post shape. Content is rendered
// from markdown to sanitized HTML.
type PublicPost struct {
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt,omitempty"`
	ContentHTML     string     `json:"content_html,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	CoverImageURL   string     `json:"cover_image_url,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// cachedList loads a public list payload through the cache.
func cachedList[T any](ctx context.Context, c cache.Cache, key string, load func() (*T, error)) (*T, error) {
	if c == nil {
		return load()
	}
	typed := cache.NewTypedCache[T](c, publicCacheTTL)
	return typed.GetOrSet(ctx, key, load)
}

// WarmPublicCache precomputes every public list payload for every language
// so the first storefront hit after a restart is served from cache.
func (h *Handler) WarmPublicCache(ctx context.Context) error {
	for _, lang := range l10n.Languages {
		if _, err := cachedList(ctx, h.cache, "public:products:"+lang, func() (*[]PublicProduct, error) {
			return h.buildPublicProducts(ctx, lang)
		}); err != nil {
			return err
		}
		if _, err := cachedList(ctx, h.cache, "public:brands:"+lang, func() (*[]PublicBrand, error) {
			return h.buildPublicBrands(ctx, lang)
		}); err != nil {
			return err
		}
		if _, err := cachedList(ctx, h.cache, "public:categories:"+lang, func() (*[]PublicCategory, error) {
			return h.buildPublicCategories(ctx, lang)
		}); err != nil {
			return err
		}
		if _, err := cachedList(ctx, h.cache, "public:presets:"+lang, func() (*[]PublicPreset, error) {
			return h.buildPublicPresets(ctx, lang)
		}); err != nil {
			return err
		}
		if _, err := cachedList(ctx, h.cache, "public:posts:"+lang, func() (*[]PublicPost, error) {
			return h.buildPublicPosts(ctx, lang)
		}); err != nil {
			return err
		}
	}
	return nil
}

// slugIndex maps record ids to slugs for reference resolution.
func slugIndex[T any](items []T, id func(T) string, slug func(T) string) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[id(item)] = slug(item)
	}
	return out
}

// buildPublicProducts assembles the active, language-resolved product list
// with brand and category slugs joined in.
func (h *Handler) buildPublicProducts(ctx context.Context, lang string) (*[]PublicProduct, error) {
	products, _, err := h.products.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		return nil, err
	}
	brands, _, err := h.brands.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	categories, _, err := h.categories.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	brandSlugs := slugIndex(brands,
		func(b model.Brand) string { return b.ID }, func(b model.Brand) string { return b.Slug })
	categorySlugs := slugIndex(categories,
		func(c model.Category) string { return c.ID }, func(c model.Category) string { return c.Slug })

	out := make([]PublicProduct, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		out = append(out, PublicProduct{
			Slug:        p.Slug,
			Name:        p.Name.Get(lang),
			Description: p.Description.Get(lang),
			SKU:         p.SKU,
			Price:       p.Price,
			Currency:    p.Currency,
			Brand:       brandSlugs[p.BrandID],
			Category:    categorySlugs[p.CategoryID],
			ImageURL:    p.ImageURL,
			Specs:       p.Specs,
			IsFeatured:  p.IsFeatured,
		})
	}
	return &out, nil
}

// buildPublicBrands assembles the active, language-resolved brand list.
func (h *Handler) buildPublicBrands(ctx context.Context, lang string) (*[]PublicBrand, error) {
	brands, _, err := h.brands.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		return nil, err
	}
	out := make([]PublicBrand, 0, len(brands))
	for _, b := range brands {
		if !b.IsActive {
			continue
		}
		out = append(out, PublicBrand{
			Slug:    b.Slug,
			Name:    b.Name.Get(lang),
			Color:   b.Color,
			LogoURL: b.LogoURL,
		})
	}
	return &out, nil
}

// buildPublicCategories assembles the active category list ordered by
// position for menu rendering.
func (h *Handler) buildPublicCategories(ctx context.Context, lang string) (*[]PublicCategory, error) {
	categories, _, err := h.categories.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	parentSlugs := slugIndex(categories,
		func(c model.Category) string { return c.ID }, func(c model.Category) string { return c.Slug })

	out := make([]PublicCategory, 0, len(categories))
	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		out = append(out, PublicCategory{
			Slug:        c.Slug,
			Name:        c.Name.Get(lang),
			Description: c.Description.Get(lang),
			ParentSlug:  parentSlugs[c.ParentID],
			Position:    c.Position,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Position < out[b].Position })
	return &out, nil
}

// buildPublicPresets assembles the active preset list with product slugs
// resolved.
func (h *Handler) buildPublicPresets(ctx context.Context, lang string) (*[]PublicPreset, error) {
	presets, _, err := h.presets.List(ctx, store.ListOptions{OrderBy: "slug"})
	if err != nil {
		return nil, err
	}
	products, _, err := h.products.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	productSlugs := slugIndex(products,
		func(p model.Product) string { return p.ID }, func(p model.Product) string { return p.Slug })

	out := make([]PublicPreset, 0, len(presets))
	for _, p := range presets {
		if !p.IsActive {
			continue
		}
		slugs := make([]string, 0, len(p.ProductIDs))
		for _, id := range p.ProductIDs {
			if s, ok := productSlugs[id]; ok {
				slugs = append(slugs, s)
			}
		}
		out = append(out, PublicPreset{
			Slug:        p.Slug,
			Name:        p.Name.Get(lang),
			Description: p.Description.Get(lang),
			TentSize:    p.TentSize,
			Products:    slugs,
			IsFeatured:  p.IsFeatured,
		})
	}
	return &out, nil
}

// buildPublicPosts assembles the published post list, newest first,
// without the rendered content body.
func (h *Handler) buildPublicPosts(ctx context.Context, lang string) (*[]PublicPost, error) {
	posts, _, err := h.posts.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]PublicPost, 0, len(posts))
	for _, p := range posts {
		if !p.IsPublished {
			continue
		}
		out = append(out, PublicPost{
			Slug:          p.Slug,
			Title:         p.Title.Get(lang),
			Excerpt:       p.Excerpt.Get(lang),
			CoverImageURL: p.CoverImageURL,
			PublishedAt:   p.PublishedAt,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		ta, tb := out[a].PublishedAt, out[b].PublishedAt
		if ta == nil || tb == nil {
			return tb == nil && ta != nil
		}
		return ta.After(*tb)
	})
	return &out, nil
}

// PublicListProducts handles GET /public/{lang}/products. Only active
// products appear; localized fields resolve with English fallback.
func (h *Handler) PublicListProducts(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	list, err := cachedList(r.Context(), h.cache, "public:products:"+lang, func() (*[]PublicProduct, error) {
		return h.buildPublicProducts(r.Context(), lang)
	})
	if err != nil {
		WriteInternalError(w, "Failed to list products")
		return
	}
	WriteSuccess(w, *list, &Meta{Total: int64(len(*list))})
}

// PublicGetProduct handles GET /public/{lang}/products/{slug}.
func (h *Handler) PublicGetProduct(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	slug := chi.URLParam(r, "slug")

	p, err := h.products.FindByField(r.Context(), "slug", slug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, "Product not found")
		return
	case err != nil:
		WriteInternalError(w, "Failed to load product")
		return
	case !p.IsActive:
		WriteNotFound(w, "Product not found")
		return
	}

	out := PublicProduct{
		Slug:        p.Slug,
		Name:        p.Name.Get(lang),
		Description: p.Description.Get(lang),
		SKU:         p.SKU,
		Price:       p.Price,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		Specs:       p.Specs,
		IsFeatured:  p.IsFeatured,
	}
	if p.BrandID != "" {
		if b, err := h.brands.GetByID(r.Context(), p.BrandID); err == nil {
			out.Brand = b.Slug
		}
	}
	if p.CategoryID != "" {
		if c, err := h.categories.GetByID(r.Context(), p.CategoryID); err == nil {
			out.Category = c.Slug
		}
	}
	WriteSuccess(w, out, nil)
}

// PublicListBrands handles GET /public/{lang}/brands.
func (h *Handler) PublicListBrands(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	list, err := cachedList(r.Context(), h.cache, "public:brands:"+lang, func() (*[]PublicBrand, error) {
		return h.buildPublicBrands(r.Context(), lang)
	})
	if err != nil {
		WriteInternalError(w, "Failed to list brands")
		return
	}
	WriteSuccess(w, *list, &Meta{Total: int64(len(*list))})
}

// PublicListCategories handles GET /public/{lang}/categories, ordered by
// position for menu rendering.
func (h *Handler) PublicListCategories(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	list, err := cachedList(r.Context(), h.cache, "public:categories:"+lang, func() (*[]PublicCategory, error) {
		return h.buildPublicCategories(r.Context(), lang)
	})
	if err != nil {
		WriteInternalError(w, "Failed to list categories")
		return
	}
	WriteSuccess(w, *list, &Meta{Total: int64(len(*list))})
}

// PublicListPresets handles GET /public/{lang}/presets.
func (h *Handler) PublicListPresets(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	list, err := cachedList(r.Context(), h.cache, "public:presets:"+lang, func() (*[]PublicPreset, error) {
		return h.buildPublicPresets(r.Context(), lang)
	})
	if err != nil {
		WriteInternalError(w, "Failed to list presets")
		return
	}
	WriteSuccess(w, *list, &Meta{Total: int64(len(*list))})
}

// PublicGetSchedule handles GET /public/{lang}/feeding-schedules/{slug}.
// Items come back sorted by week with product slugs resolved.
func (h *Handler) PublicGetSchedule(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	slug := chi.URLParam(r, "slug")

	schedule, err := h.schedules.FindByField(r.Context(), "slug", slug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, "Schedule not found")
		return
	case err != nil:
		WriteInternalError(w, "Failed to load schedule")
		return
	case !schedule.IsActive:
		WriteNotFound(w, "Schedule not found")
		return
	}

	items, _, err := h.scheduleItems.List(r.Context(), store.ListOptions{})
	if err != nil {
		WriteInternalError(w, "Failed to load schedule items")
		return
	}
	products, _, err := h.products.List(r.Context(), store.ListOptions{})
	if err != nil {
		WriteInternalError(w, "Failed to load products")
		return
	}
	productSlugs := slugIndex(products,
		func(p model.Product) string { return p.ID }, func(p model.Product) string { return p.Slug })

	out := PublicSchedule{
		Slug:        schedule.Slug,
		Name:        schedule.Name.Get(lang),
		Description: schedule.Description.Get(lang),
		WeekCount:   schedule.WeekCount,
		Items:       []PublicScheduleItem{},
	}
	for _, item := range items {
		if item.ScheduleID != schedule.ID {
			continue
		}
		out.Items = append(out.Items, PublicScheduleItem{
			Product:      productSlugs[item.ProductID],
			Week:         item.Week,
			DosePerLiter: item.DosePerLiter,
			Note:         item.Note.Get(lang),
		})
	}
	sort.SliceStable(out.Items, func(a, b int) bool { return out.Items[a].Week < out.Items[b].Week })

	WriteSuccess(w, out, nil)
}

// PublicListPosts handles GET /public/{lang}/posts. Only published posts
// appear, newest first, without the rendered content body.
func (h *Handler) PublicListPosts(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	list, err := cachedList(r.Context(), h.cache, "public:posts:"+lang, func() (*[]PublicPost, error) {
		return h.buildPublicPosts(r.Context(), lang)
	})
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}
	WriteSuccess(w, *list, &Meta{Total: int64(len(*list))})
}

// PublicGetPost handles GET /public/{lang}/posts/{slug} with the markdown
// content rendered to sanitized HTML.
func (h *Handler) PublicGetPost(w http.ResponseWriter, r *http.Request) {
	lang := publicLang(r)
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.FindByField(r.Context(), "slug", slug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, "Post not found")
		return
	case err != nil:
		WriteInternalError(w, "Failed to load post")
		return
	case !post.IsPublished:
		WriteNotFound(w, "Post not found")
		return
	}

	contentHTML, err := render.Markdown(post.Content.Get(lang))
	if err != nil {
		WriteInternalError(w, "Failed to render post")
		return
	}

	WriteSuccess(w, PublicPost{
		Slug:            post.Slug,
		Title:           post.Title.Get(lang),
		Excerpt:         post.Excerpt.Get(lang),
		ContentHTML:     contentHTML,
		MetaTitle:       post.MetaTitle.Get(lang),
		MetaDescription: post.MetaDescription.Get(lang),
		CoverImageURL:   post.CoverImageURL,
		PublishedAt:     post.PublishedAt,
	}, nil)
}
