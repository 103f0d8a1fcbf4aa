// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
)

// TranslateRequest is the request body for POST /api/v1/translate. Either a
// single text with explicit languages, or a localized value to fill.
type TranslateRequest struct {
	Text     string    `json:"text,omitempty"`
	FromLang string    `json:"from_lang,omitempty"`
	ToLang   string    `json:"to_lang,omitempty"`
	Value    l10n.Text `json:"value,omitempty"`
}

// TranslateResponse carries the machine translation drafts back to the editor.
type TranslateResponse struct {
	Text  string    `json:"text,omitempty"`
	Value l10n.Text `json:"value,omitempty"`
}

// Translate handles POST /api/v1/translate. Answers 503 when no translation
// backend is configured.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	if h.translate == nil {
		WriteError(w, http.StatusServiceUnavailable, "translate_disabled",
			i18n.T(lang, "translate.disabled"), nil)
		return
	}

	var req TranslateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Value != nil {
		filled, err := h.translate.FillMissing(r.Context(), req.Value)
		if err != nil {
			WriteError(w, http.StatusBadGateway, "translate_failed", err.Error(), nil)
			return
		}
		WriteSuccess(w, TranslateResponse{Value: filled}, nil)
		return
	}

	out, err := h.translate.Translate(r.Context(), req.Text, req.FromLang, req.ToLang)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "translate_failed", err.Error(), nil)
		return
	}
	WriteSuccess(w, TranslateResponse{Text: out}, nil)
}
