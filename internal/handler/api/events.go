// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// ListEvents handles GET /api/v1/events. Admin only; the event log is append
// only so there are no create/update/delete handlers.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := parsePageParam(r)
	perPage := parsePerPageParam(r, 50, 200)

	events, total, err := h.events.List(r.Context(), int64(perPage), int64((page-1)*perPage))
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	WriteSuccess(w, events, pageMeta(total, page, perPage))
}
