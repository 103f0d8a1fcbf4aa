// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/groplan-go/internal/version"
)

// HealthResponse is the body for the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health: answers 200 when the database responds,
// 503 otherwise. Unauthenticated, for load balancer probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "degraded",
			Version: version.Version,
		})
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Version,
	})
}

// Live handles GET /health/live: the process is up.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version.Version})
}

// Ready handles GET /health/ready: dependencies are reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}
