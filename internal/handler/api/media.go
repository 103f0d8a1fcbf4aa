// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/service"
)

// Upload handles POST /api/v1/uploads. Expects a multipart form with the
// image in the "file" field; answers the stored original and its variants.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, i18n.T(lang, "upload.too_large", service.MaxUploadSize>>20), nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.media.Upload(file, header)
	if err != nil {
		h.events.LogUpload(r.Context(), model.EventLevelWarning, "upload rejected",
			middleware.GetUserEmail(r), map[string]any{"filename": header.Filename, "reason": err.Error()})
		WriteBadRequest(w, i18n.T(lang, "upload.bad_type"), map[string]string{"file": err.Error()})
		return
	}

	h.events.LogUpload(r.Context(), model.EventLevelInfo, "file uploaded",
		middleware.GetUserEmail(r), map[string]any{"id": result.ID, "filename": result.Filename, "size": result.Size})
	WriteCreated(w, result)
}

// DeleteUpload handles DELETE /api/v1/uploads/{id}?confirm=true. Removes the
// original and every generated variant.
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !confirmDelete(w, r) {
		return
	}
	if err := h.media.Delete(id); err != nil {
		WriteInternalError(w, "Failed to delete upload")
		return
	}
	h.events.LogUpload(r.Context(), model.EventLevelInfo, "file deleted",
		middleware.GetUserEmail(r), map[string]any{"id": id})
	WriteSuccess(w, map[string]string{"message": i18n.T(middleware.GetLang(r), "delete.done")}, nil)
}
