// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the catalog admin API and the
// public read endpoints.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/groplan-go/internal/cache"
	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/service"
	"github.com/olegiv/groplan-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	sm         *scs.SessionManager
	events     *service.EventService
	media      *service.MediaService
	translate  *service.TranslateService // nil when not configured
	loginGuard *middleware.LoginProtection
	cache      cache.Cache
	siteURL    string

	brands         *store.Gateway[model.Brand, *model.Brand]
	categories     *store.Gateway[model.Category, *model.Category]
	products       *store.Gateway[model.Product, *model.Product]
	vendors        *store.Gateway[model.Vendor, *model.Vendor]
	vendorProducts *store.Gateway[model.VendorProduct, *model.VendorProduct]
	posts          *store.Gateway[model.BlogPost, *model.BlogPost]
	schedules      *store.Gateway[model.FeedingSchedule, *model.FeedingSchedule]
	scheduleItems  *store.Gateway[model.FeedingScheduleItem, *model.FeedingScheduleItem]
	presets        *store.Gateway[model.PresetSet, *model.PresetSet]
	users          *store.Gateway[model.AdminUser, *model.AdminUser]
}

// Options carries the service dependencies for NewHandler.
type Options struct {
	SessionManager *scs.SessionManager
	Events         *service.EventService
	Media          *service.MediaService
	Translate      *service.TranslateService
	LoginGuard     *middleware.LoginProtection
	Cache          cache.Cache
	SiteURL        string
}

// NewHandler creates the API handler with one gateway per collection.
func NewHandler(db *sql.DB, opts Options) *Handler {
	return &Handler{
		db:         db,
		sm:         opts.SessionManager,
		events:     opts.Events,
		media:      opts.Media,
		translate:  opts.Translate,
		loginGuard: opts.LoginGuard,
		cache:      opts.Cache,
		siteURL:    opts.SiteURL,

		brands:         store.MustGateway[model.Brand](db, store.TableBrands),
		categories:     store.MustGateway[model.Category](db, store.TableCategories),
		products:       store.MustGateway[model.Product](db, store.TableProducts),
		vendors:        store.MustGateway[model.Vendor](db, store.TableVendors),
		vendorProducts: store.MustGateway[model.VendorProduct](db, store.TableVendorProducts),
		posts:          store.MustGateway[model.BlogPost](db, store.TableBlogPosts),
		schedules:      store.MustGateway[model.FeedingSchedule](db, store.TableFeedingSchedules),
		scheduleItems:  store.MustGateway[model.FeedingScheduleItem](db, store.TableFeedingScheduleItems),
		presets:        store.MustGateway[model.PresetSet](db, store.TablePresetSets),
		users:          store.MustGateway[model.AdminUser](db, store.TableAdminUsers),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, code, message string) {
	WriteError(w, http.StatusConflict, code, message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// decodeJSON decodes the request body, rejecting unknown fields so typos in
// client payloads surface instead of silently dropping data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body: "+err.Error(), nil)
		return false
	}
	return true
}

// parsePageParam returns the page number from ?page=, minimum 1.
func parsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePerPageParam returns ?per_page= clamped to [1, max].
func parsePerPageParam(r *http.Request, def, max int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return def
	}
	if perPage > max {
		return max
	}
	return perPage
}

// pageMeta builds pagination metadata.
func pageMeta(total int64, page, perPage int) *Meta {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return &Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}

// listOptions parses the common list query params into gateway options.
// Pagination is applied in-process after search/filter, so no limit here.
func listOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	return store.ListOptions{
		OrderBy: q.Get("order_by"),
		Desc:    q.Get("order") != "asc",
	}
}

// paginate slices items for the requested page.
func paginate[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// requireRecord fetches one record by URL id, writing 404/500 on failure.
// Returns the record and true on success.
func requireRecord[T any, P store.RecordPtr[T]](w http.ResponseWriter, r *http.Request, gw *store.Gateway[T, P], id, entityName string) (*T, bool) {
	rec, err := gw.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, i18n.T(middleware.GetLang(r), "errors.not_found"))
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return nil, false
	}
	return rec, true
}

// confirmDelete enforces the two-step delete: the first request without
// confirm=true answers 409 and nothing is removed.
func confirmDelete(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	WriteConflict(w, "confirm_required", i18n.T(middleware.GetLang(r), "delete.confirm"))
	return false
}

// writeStoreError maps store sentinel errors onto API responses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, entityName string) {
	lang := middleware.GetLang(r)
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, i18n.T(lang, "errors.not_found"))
	case errors.Is(err, store.ErrStale):
		WriteConflict(w, "stale", i18n.T(lang, "errors.stale"))
	default:
		WriteInternalError(w, "Failed to save "+entityName)
	}
}

// checkFieldUnique verifies no other record in the gateway carries the same
// value in field. Writes a validation error and returns false on duplicates.
func checkFieldUnique[T any, P store.RecordPtr[T]](w http.ResponseWriter, r *http.Request, gw *store.Gateway[T, P], field, value, excludeID string) bool {
	count, err := gw.FieldEquals(r.Context(), field, value, excludeID)
	if err != nil {
		WriteInternalError(w, "Failed to check "+field)
		return false
	}
	if count != 0 {
		WriteValidationError(w, map[string]string{field: "Already in use"})
		return false
	}
	return true
}

// checkSlugUnique verifies no other record in the gateway uses the slug.
func checkSlugUnique[T any, P store.RecordPtr[T]](w http.ResponseWriter, r *http.Request, gw *store.Gateway[T, P], slug, excludeID string) bool {
	return checkFieldUnique(w, r, gw, "slug", slug, excludeID)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1", Time: time.Now().UTC()}, nil)
}
