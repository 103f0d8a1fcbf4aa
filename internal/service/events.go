// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business-logic layer between HTTP handlers
// and the store: audit event logging, upload processing, and translation
// assist.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/olegiv/groplan-go/internal/geoip"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
)

// EventService writes audit trail entries. When a GeoIP resolver is
// attached, events carry the client's country in metadata.
type EventService struct {
	events *store.Events
	geo    *geoip.Resolver
}

// NewEventService creates a new EventService. geo may be nil.
func NewEventService(db *sql.DB, geo *geoip.Resolver) *EventService {
	return &EventService{
		events: store.NewEvents(db),
		geo:    geo,
	}
}

// Log creates an event log entry. Failures are logged, not propagated;
// auditing must never break the operation being audited.
func (s *EventService) Log(ctx context.Context, level, category, message, actor, clientIP string, metadata map[string]any) {
	if metadata == nil {
		metadata = make(map[string]any, 2)
	}
	if clientIP != "" {
		metadata["ip"] = clientIP
		if s.geo != nil {
			if country := s.geo.Country(clientIP); country != "" {
				metadata["country"] = country
			}
		}
	}

	metadataJSON := "{}"
	if b, err := json.Marshal(metadata); err == nil {
		metadataJSON = string(b)
	}

	err := s.events.Create(ctx, &model.Event{
		Level:    level,
		Category: category,
		Message:  message,
		Actor:    actor,
		Metadata: metadataJSON,
	})
	if err != nil {
		slog.Error("failed to write audit event", "error", err, "message", message)
	}
}

// WithUserAgent annotates event metadata with the parsed browser and OS so
// login entries identify the client without storing the raw UA string.
func WithUserAgent(metadata map[string]any, rawUA string) map[string]any {
	if rawUA == "" {
		return metadata
	}
	if metadata == nil {
		metadata = make(map[string]any, 2)
	}
	ua := useragent.Parse(rawUA)
	if ua.Name != "" {
		metadata["browser"] = strings.TrimSpace(ua.Name + " " + ua.Version)
	}
	if ua.OS != "" {
		metadata["os"] = ua.OS
	}
	return metadata
}

// LogAuth logs an authentication event (login, logout, lockout).
func (s *EventService) LogAuth(ctx context.Context, level, message, actor, clientIP string, metadata map[string]any) {
	s.Log(ctx, level, model.EventCategoryAuth, message, actor, clientIP, metadata)
}

// LogContent logs a content change (create, update, delete on a collection).
func (s *EventService) LogContent(ctx context.Context, message, actor string, metadata map[string]any) {
	s.Log(ctx, model.EventLevelInfo, model.EventCategoryContent, message, actor, "", metadata)
}

// LogUpload logs an upload event.
func (s *EventService) LogUpload(ctx context.Context, level, message, actor string, metadata map[string]any) {
	s.Log(ctx, level, model.EventCategoryUpload, message, actor, "", metadata)
}

// List returns recent events, newest first.
func (s *EventService) List(ctx context.Context, limit, offset int64) ([]model.Event, int64, error) {
	events, err := s.events.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.events.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
