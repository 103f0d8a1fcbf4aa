// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/groplan-go/internal/filter"
	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
)

// validationFailure carries field errors out of a Modify callback so the
// transaction rolls back and the handler can answer 422.
type validationFailure struct {
	errs model.FieldErrors
}

func (e validationFailure) Error() string { return "validation failed" }

// failValidation wraps field errors for return from a Modify callback.
func failValidation(errs model.FieldErrors) error {
	return validationFailure{errs: errs}
}

// writeModifyError answers a failed Modify: 422 for validation failures,
// store-mapped errors otherwise.
func writeModifyError(w http.ResponseWriter, r *http.Request, err error, entityName string) {
	var vf validationFailure
	if errors.As(err, &vf) {
		WriteValidationError(w, vf.errs)
		return
	}
	writeStoreError(w, r, err, entityName)
}

// checkVersion enforces optimistic concurrency inside a Modify callback.
// A request may carry the version the client last read; when it no longer
// matches the stored row another editor won the race, so the edit aborts
// with ErrStale and the handler answers 409. Requests without a version
// merge unconditionally.
func checkVersion(requested *int64, current int64) error {
	if requested != nil && *requested != current {
		return store.ErrStale
	}
	return nil
}

// listCollection implements the shared list pipeline: fetch ordered rows,
// apply free-text search and discrete filters in-process, then paginate.
// The displayed total is the filtered count, not the table count.
func listCollection[T any](w http.ResponseWriter, r *http.Request, items []T,
	searchFields func(T) []string, preds ...filter.Predicate[T]) {
	q := r.URL.Query().Get("q")
	if searchFields != nil {
		items = filter.Search(items, q, searchFields)
	}
	items = filter.Apply(items, preds...)

	page := parsePageParam(r)
	perPage := parsePerPageParam(r, 20, 100)
	WriteSuccess(w, paginate(items, page, perPage), pageMeta(int64(len(items)), page, perPage))
}

// boolFilter builds a predicate from a "true"/"false" query value, or nil
// when the parameter is absent.
func boolFilter[T any](values url.Values, name string, get func(T) bool) filter.Predicate[T] {
	switch values.Get(name) {
	case "true":
		return func(item T) bool { return get(item) }
	case "false":
		return func(item T) bool { return !get(item) }
	default:
		return nil
	}
}

// stringFilter builds an equality predicate from a query value, or nil when
// the parameter is absent.
func stringFilter[T any](values url.Values, name string, get func(T) string) filter.Predicate[T] {
	want := values.Get(name)
	if want == "" {
		return nil
	}
	return func(item T) bool { return get(item) == want }
}

// collect drops nil predicates so absent query params don't filter.
func collect[T any](preds ...filter.Predicate[T]) []filter.Predicate[T] {
	out := make([]filter.Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// contentChanged records a content event and clears the public cache so the
// read side picks up the edit on the next request.
func (h *Handler) contentChanged(ctx context.Context, message, actor string, metadata map[string]any) {
	h.events.LogContent(ctx, message, actor, metadata)
	if h.cache != nil {
		if err := h.cache.Clear(ctx); err != nil {
			slog.Warn("failed to clear public cache", "error", err)
		}
	}
}

// deleteRecord implements the shared confirmed-delete pipeline.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, del func() error, entityName, id string) {
	if !confirmDelete(w, r) {
		return
	}
	if err := del(); err != nil {
		writeStoreError(w, r, err, entityName)
		return
	}
	h.contentChanged(r.Context(), entityName+" deleted", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, map[string]string{"message": i18n.T(middleware.GetLang(r), "delete.done")}, nil)
}

// fetchAll loads a full ordered collection for the list pipeline.
func fetchAll[T any, P store.RecordPtr[T]](w http.ResponseWriter, r *http.Request, gw *store.Gateway[T, P], entityName string) ([]T, bool) {
	items, _, err := gw.List(r.Context(), listOptions(r))
	if err != nil {
		WriteInternalError(w, "Failed to list "+entityName)
		return nil, false
	}
	return items, true
}
