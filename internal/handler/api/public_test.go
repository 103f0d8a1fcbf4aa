// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/cache"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/service"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func TestPublicListProductsFallsBackToEnglish(t *testing.T) {
	h := newTestHandler(t)
	mustCreateProduct(t, h, CreateProductRequest{
		Name:        l10n.NewFrom("Helios 600W", ""), // no Turkish translation
		Description: l10n.NewFrom("A lamp", "Bir lamba"),
		SKU:         "HL-600",
		Slug:        "helios-600w",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/tr/products", nil)
	h.PublicListProducts(rec, withURLParam(req, "lang", "tr"))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData[[]PublicProduct](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Helios 600W", resp.Data[0].Name, "missing Turkish name falls back to English")
	assert.Equal(t, "Bir lamba", resp.Data[0].Description, "translated fields stay translated")
}

func TestPublicListProductsHidesInactive(t *testing.T) {
	h := newTestHandler(t)
	inactive := false
	mustCreateProduct(t, h, CreateProductRequest{
		Name: l10n.NewFrom("Helios 600W", ""),
		SKU:  "HL-600",
		Slug: "helios-600w",
	})
	mustCreateProduct(t, h, CreateProductRequest{
		Name:     l10n.NewFrom("Retired Lamp", ""),
		SKU:      "RL-1",
		Slug:     "retired-lamp",
		IsActive: &inactive,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/en/products", nil)
	h.PublicListProducts(rec, withURLParam(req, "lang", "en"))

	resp := decodeData[[]PublicProduct](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "helios-600w", resp.Data[0].Slug)
}

func TestPublicGetProductResolvesBrandSlug(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")
	mustCreateProduct(t, h, CreateProductRequest{
		Name:    l10n.NewFrom("Helios 600W", ""),
		SKU:     "HL-600",
		Slug:    "helios-600w",
		BrandID: brand.ID,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/en/products/helios-600w", nil)
	req = withURLParam(req, "lang", "en")
	req = withURLParam(req, "slug", "helios-600w")
	h.PublicGetProduct(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	product := decodeData[PublicProduct](t, rec).Data
	assert.Equal(t, "greengro", product.Brand)
}

func TestPublicUnknownLanguageFallsBack(t *testing.T) {
	h := newTestHandler(t)
	mustCreateProduct(t, h, CreateProductRequest{
		Name: l10n.NewFrom("Helios 600W", "Helios TR"),
		SKU:  "HL-600",
		Slug: "helios-600w",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/de/products", nil)
	h.PublicListProducts(rec, withURLParam(req, "lang", "de"))

	resp := decodeData[[]PublicProduct](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Helios 600W", resp.Data[0].Name, "unsupported language resolves as the default")
}

func TestPublicGetPostRendersMarkdown(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CreateBlogPost(rec, jsonRequest(t, http.MethodPost, "/api/v1/posts", CreateBlogPostRequest{
		Title:   l10n.NewFrom("Veg Week Guide", ""),
		Slug:    "veg-week-guide",
		Content: l10n.NewFrom("# Week 1\n\n<script>alert(1)</script>Feed lightly.", ""),
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decodeData[map[string]any](t, rec).Data
	id, _ := post["id"].(string)
	require.NotEmpty(t, id)

	// Drafts are invisible on the public side.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/en/posts/veg-week-guide", nil)
	req = withURLParam(req, "lang", "en")
	req = withURLParam(req, "slug", "veg-week-guide")
	h.PublicGetPost(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	published := true
	rec = httptest.NewRecorder()
	upd := jsonRequest(t, http.MethodPut, "/api/v1/posts/"+id, UpdateBlogPostRequest{IsPublished: &published})
	h.UpdateBlogPost(rec, withURLParam(upd, "id", id))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/public/en/posts/veg-week-guide", nil)
	req = withURLParam(req, "lang", "en")
	req = withURLParam(req, "slug", "veg-week-guide")
	h.PublicGetPost(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeData[PublicPost](t, rec).Data
	assert.Contains(t, out.ContentHTML, "<h1")
	assert.NotContains(t, out.ContentHTML, "<script>")
	require.NotNil(t, out.PublishedAt)
}

func TestRobotsAndSitemap(t *testing.T) {
	h := newTestHandler(t)
	mustCreateProduct(t, h, CreateProductRequest{
		Name: l10n.NewFrom("Helios 600W", ""),
		SKU:  "HL-600",
		Slug: "helios-600w",
	})

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://groplan.test/sitemap.xml")

	rec = httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "https://groplan.test/public/en/products/helios-600w")
	assert.Contains(t, body, "https://groplan.test/public/tr/products/helios-600w")
}

func TestPublicGetProductBackendFailure(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	h := NewHandler(db, Options{
		SessionManager: scs.New(),
		Events:         service.NewEventService(db, nil),
	})
	cleanup() // closes the database underneath the handler

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet,
		"/public/en/products/helios-600w", nil), "lang", "en")
	req = withURLParam(req, "slug", "helios-600w")
	h.PublicGetProduct(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code,
		"a store failure is not the same as an absent record")
}

func TestPublicGetScheduleBackendFailure(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	h := NewHandler(db, Options{
		SessionManager: scs.New(),
		Events:         service.NewEventService(db, nil),
	})
	cleanup()

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet,
		"/public/en/feeding-schedules/veg-cycle", nil), "lang", "en")
	req = withURLParam(req, "slug", "veg-cycle")
	h.PublicGetSchedule(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPublicGetPostBackendFailure(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	h := NewHandler(db, Options{
		SessionManager: scs.New(),
		Events:         service.NewEventService(db, nil),
	})
	cleanup()

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet,
		"/public/en/posts/first-post", nil), "lang", "en")
	req = withURLParam(req, "slug", "first-post")
	h.PublicGetPost(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWarmPublicCachePrimesEveryList(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = c.Close() })
	h := NewHandler(db, Options{
		SessionManager: scs.New(),
		Events:         service.NewEventService(db, nil),
		Cache:          c,
	})

	mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")
	require.NoError(t, h.WarmPublicCache(context.Background()))

	ctx := context.Background()
	for _, section := range []string{"products", "brands", "categories", "presets", "posts"} {
		for _, lang := range l10n.Languages {
			key := "public:" + section + ":" + lang
			_, err := c.Get(ctx, key)
			assert.NoError(t, err, "expected %s to be warmed", key)
		}
	}
}
