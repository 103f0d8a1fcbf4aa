// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/model"
)

func TestCreateBrand(t *testing.T) {
	h := newTestHandler(t)

	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", "GreenGro TR"), "")

	assert.NotEmpty(t, brand.ID)
	assert.Equal(t, "greengro", brand.Slug, "slug derives from the English name when absent")
	assert.Equal(t, "GreenGro TR", brand.Name.Get(l10n.LangTR))
	assert.True(t, brand.IsActive)
}

func TestCreateBrandMalformedJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/brands", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.CreateBrand(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

func TestCreateBrandUnknownField(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/brands",
		strings.NewReader(`{"name":{"en":"X"},"slgu":"typo"}`))
	rec := httptest.NewRecorder()
	h.CreateBrand(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBrandMissingName(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CreateBrand(rec, jsonRequest(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{Slug: "nameless"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.Contains(t, detail.Details, "name")
}

func TestCreateBrandDuplicateSlug(t *testing.T) {
	h := newTestHandler(t)
	mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")

	rec := httptest.NewRecorder()
	h.CreateBrand(rec, jsonRequest(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{
		Name: l10n.NewFrom("Other", ""),
		Slug: "greengro",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "slug")
}

func TestUpdateBrandMergesOverStored(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", "GreenGro Türkiye"), "greengro")

	// Only the color is sent; everything else must survive.
	color := "#2e7d32"
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/brands/"+brand.ID, UpdateBrandRequest{Color: &color})
	h.UpdateBrand(rec, withURLParam(req, "id", brand.ID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[model.Brand](t, rec).Data
	assert.Equal(t, "#2e7d32", updated.Color)
	assert.Equal(t, "GreenGro", updated.Name.Get(l10n.LangEN))
	assert.Equal(t, "GreenGro Türkiye", updated.Name.Get(l10n.LangTR))
	assert.Equal(t, "greengro", updated.Slug)
	assert.Greater(t, updated.Version, brand.Version)
}

func TestUpdateBrandNotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/brands/missing", UpdateBrandRequest{})
	h.UpdateBrand(rec, withURLParam(req, "id", "missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBrandInvalid(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")

	badSlug := "Not A Slug"
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/brands/"+brand.ID, UpdateBrandRequest{Slug: &badSlug})
	h.UpdateBrand(rec, withURLParam(req, "id", brand.ID))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The rejected update must not have been committed.
	getRec := httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/brands/"+brand.ID, nil)
	h.GetBrand(getRec, withURLParam(getReq, "id", brand.ID))
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "greengro", decodeData[model.Brand](t, getRec).Data.Slug)
}

func TestDeleteBrandRequiresConfirmation(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")

	// Without confirm=true nothing is removed.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/brands/"+brand.ID, nil)
	h.DeleteBrand(rec, withURLParam(req, "id", brand.ID))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "confirm_required", decodeError(t, rec).Code)

	getRec := httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/brands/"+brand.ID, nil)
	h.GetBrand(getRec, withURLParam(getReq, "id", brand.ID))
	assert.Equal(t, http.StatusOK, getRec.Code)

	// With confirm=true the record goes away.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/brands/"+brand.ID+"?confirm=true", nil)
	h.DeleteBrand(rec, withURLParam(req, "id", brand.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	getRec = httptest.NewRecorder()
	getReq = httptest.NewRequest(http.MethodGet, "/api/v1/brands/"+brand.ID, nil)
	h.GetBrand(getRec, withURLParam(getReq, "id", brand.ID))
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestListBrandsFiltersAndPaginates(t *testing.T) {
	h := newTestHandler(t)
	mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")
	mustCreateBrand(t, h, l10n.NewFrom("Helios Lighting", ""), "helios")
	inactive := false
	rec := httptest.NewRecorder()
	h.CreateBrand(rec, jsonRequest(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{
		Name:     l10n.NewFrom("Dormant Co", ""),
		Slug:     "dormant",
		IsActive: &inactive,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Filters combine with AND; the total reflects the filtered set.
	rec = httptest.NewRecorder()
	h.ListBrands(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands?active=true&q=helios", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData[[]model.Brand](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "helios", resp.Data[0].Slug)
	require.NotNil(t, resp.Meta)
	assert.EqualValues(t, 1, resp.Meta.Total)

	// active=false keeps only the dormant brand.
	rec = httptest.NewRecorder()
	h.ListBrands(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands?active=false", nil))
	resp = decodeData[[]model.Brand](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "dormant", resp.Data[0].Slug)

	// Pagination slices after filtering.
	rec = httptest.NewRecorder()
	h.ListBrands(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands?per_page=2&page=2", nil))
	resp = decodeData[[]model.Brand](t, rec)
	assert.Len(t, resp.Data, 1)
	assert.EqualValues(t, 3, resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Pages)
}

func TestUpdateBrandStaleVersion(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")

	// Another editor saves first, bumping the stored version.
	winner := "#111111"
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/brands/"+brand.ID,
		UpdateBrandRequest{Color: &winner})
	h.UpdateBrand(rec, withURLParam(req, "id", brand.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Saving against the version read before that edit answers 409 and
	// leaves the winning edit in place.
	stale := brand.Version
	loser := "#222222"
	rec = httptest.NewRecorder()
	req = jsonRequest(t, http.MethodPut, "/api/v1/brands/"+brand.ID,
		UpdateBrandRequest{Version: &stale, Color: &loser})
	h.UpdateBrand(rec, withURLParam(req, "id", brand.ID))
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, "stale", decodeError(t, rec).Code)

	rec = httptest.NewRecorder()
	h.GetBrand(rec, withURLParam(httptest.NewRequest(http.MethodGet,
		"/api/v1/brands/"+brand.ID, nil), "id", brand.ID))
	assert.Equal(t, winner, decodeData[model.Brand](t, rec).Data.Color)
}

func TestUpdateBrandMatchingVersion(t *testing.T) {
	h := newTestHandler(t)
	brand := mustCreateBrand(t, h, l10n.NewFrom("GreenGro", ""), "greengro")

	version := brand.Version
	color := "#222222"
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/brands/"+brand.ID,
		UpdateBrandRequest{Version: &version, Color: &color})
	h.UpdateBrand(rec, withURLParam(req, "id", brand.ID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[model.Brand](t, rec).Data
	assert.Equal(t, color, updated.Color)
	assert.Equal(t, brand.Version+1, updated.Version)
}
