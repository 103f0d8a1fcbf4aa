// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/config"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/service"
	"github.com/olegiv/groplan-go/internal/testutil"
)

// newTestHandler builds a handler against a migrated temp database with an
// in-memory session store and no cache.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	return NewHandler(db, Options{
		SessionManager: scs.New(),
		Events:         service.NewEventService(db, nil),
		SiteURL:        "https://groplan.test",
	})
}

// jsonRequest builds a request with a JSON-encoded body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withURLParam injects a chi route parameter for direct handler calls.
// Repeated calls accumulate parameters on the same route context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// dataResponse mirrors the success envelope with a typed payload.
type dataResponse[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) dataResponse[T] {
	t.Helper()
	var resp dataResponse[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

// mustCreateBrand creates a brand through the handler and returns it.
func mustCreateBrand(t *testing.T, h *Handler, name l10n.Text, slug string) model.Brand {
	t.Helper()
	rec := httptest.NewRecorder()
	h.CreateBrand(rec, jsonRequest(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{
		Name: name,
		Slug: slug,
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[model.Brand](t, rec).Data
}

// mustCreateProduct creates a product through the handler and returns it.
func mustCreateProduct(t *testing.T, h *Handler, req CreateProductRequest) model.Product {
	t.Helper()
	rec := httptest.NewRecorder()
	h.CreateProduct(rec, jsonRequest(t, http.MethodPost, "/api/v1/products", req))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[model.Product](t, rec).Data
}

func TestStatus(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData[StatusResponse](t, rec)
	assert.Equal(t, "ok", resp.Data.Status)
}

func testRouterConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		SessionSecret: "0123456789abcdef0123456789abcdef",
		Env:           "development",
		UploadsDir:    t.TempDir(),
	}
}

func TestRouterServesHealth(t *testing.T) {
	h := newTestHandler(t)
	cfg := testRouterConfig(t)
	srv := httptest.NewServer(h.Router(cfg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
