// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
	"github.com/olegiv/groplan-go/internal/util"
)

// CreateFeedingScheduleRequest is the request body for creating a schedule.
type CreateFeedingScheduleRequest struct {
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	WeekCount   int64     `json:"week_count"`
	IsActive    *bool     `json:"is_active"`
}

// UpdateFeedingScheduleRequest is the request body for updating a schedule.
type UpdateFeedingScheduleRequest struct {
	Version     *int64     `json:"version,omitempty"`
	Name        *l10n.Text `json:"name,omitempty"`
	Description *l10n.Text `json:"description,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	WeekCount   *int64     `json:"week_count,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// ListFeedingSchedules handles GET /api/v1/feeding-schedules.
func (h *Handler) ListFeedingSchedules(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.schedules, "feeding schedules")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(s model.FeedingSchedule) bool { return s.IsActive }),
	)
	listCollection(w, r, items, func(s model.FeedingSchedule) []string {
		return []string{s.Name.Get(l10n.LangEN), s.Name.Get(l10n.LangTR), s.Slug}
	}, preds...)
}

// GetFeedingSchedule handles GET /api/v1/feeding-schedules/{id}.
func (h *Handler) GetFeedingSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, ok := requireRecord(w, r, h.schedules, chi.URLParam(r, "id"), "feeding schedule")
	if !ok {
		return
	}
	WriteSuccess(w, schedule, nil)
}

// CreateFeedingSchedule handles POST /api/v1/feeding-schedules.
func (h *Handler) CreateFeedingSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedingScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule := model.DefaultFeedingSchedule()
	if req.Name != nil {
		schedule.Name = req.Name
	}
	if req.Description != nil {
		schedule.Description = req.Description
	}
	schedule.Slug = req.Slug
	schedule.WeekCount = req.WeekCount
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}
	if schedule.Slug == "" {
		schedule.Slug = util.Slugify(schedule.Name.Get(l10n.DefaultLang))
	}

	if errs := schedule.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkSlugUnique(w, r, h.schedules, schedule.Slug, "") {
		return
	}

	if err := h.schedules.Create(r.Context(), &schedule); err != nil {
		writeStoreError(w, r, err, "feeding schedule")
		return
	}

	h.contentChanged(r.Context(), "feeding schedule created", middleware.GetUserEmail(r),
		map[string]any{"id": schedule.ID, "slug": schedule.Slug})
	WriteCreated(w, schedule)
}

// UpdateFeedingSchedule handles PUT /api/v1/feeding-schedules/{id}.
func (h *Handler) UpdateFeedingSchedule(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeedingScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Slug != nil && !checkSlugUnique(w, r, h.schedules, *req.Slug, id) {
		return
	}

	schedule, err := h.schedules.Modify(r.Context(), id, func(s *model.FeedingSchedule) error {
		if err := checkVersion(req.Version, s.Version); err != nil {
			return err
		}
		if req.Name != nil {
			s.Name = *req.Name
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.Slug != nil {
			s.Slug = *req.Slug
		}
		if req.WeekCount != nil {
			s.WeekCount = *req.WeekCount
		}
		if req.IsActive != nil {
			s.IsActive = *req.IsActive
		}
		if errs := s.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "feeding schedule")
		return
	}

	h.contentChanged(r.Context(), "feeding schedule updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, schedule, nil)
}

// DeleteFeedingSchedule handles DELETE /api/v1/feeding-schedules/{id}?confirm=true.
// Items belonging to the schedule are removed with it.
func (h *Handler) DeleteFeedingSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		// Items go first: if a delete fails partway the schedule is still
		// present and the operation can be retried without orphans.
		items, _, err := h.scheduleItems.List(r.Context(), store.ListOptions{})
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ScheduleID != id {
				continue
			}
			if err := h.scheduleItems.Delete(r.Context(), item.ID); err != nil {
				return err
			}
		}
		return h.schedules.Delete(r.Context(), id)
	}, "feeding schedule", id)
}

// CreateFeedingScheduleItemRequest is the request body for adding one dose
// entry to a schedule.
type CreateFeedingScheduleItemRequest struct {
	ScheduleID   string    `json:"schedule_id"`
	ProductID    string    `json:"product_id"`
	Week         int64     `json:"week"`
	DosePerLiter float64   `json:"dose_per_liter"`
	Note         l10n.Text `json:"note"`
}

// UpdateFeedingScheduleItemRequest is the request body for updating a dose entry.
type UpdateFeedingScheduleItemRequest struct {
	Version      *int64     `json:"version,omitempty"`
	ScheduleID   *string    `json:"schedule_id,omitempty"`
	ProductID    *string    `json:"product_id,omitempty"`
	Week         *int64     `json:"week,omitempty"`
	DosePerLiter *float64   `json:"dose_per_liter,omitempty"`
	Note         *l10n.Text `json:"note,omitempty"`
}

// ListFeedingScheduleItems handles GET /api/v1/feeding-schedule-items. Items
// are ordered by week so the grid renders in feeding order.
func (h *Handler) ListFeedingScheduleItems(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.scheduleItems, "feeding schedule items")
	if !ok {
		return
	}
	preds := collect(
		stringFilter(r.URL.Query(), "schedule", func(i model.FeedingScheduleItem) string { return i.ScheduleID }),
		stringFilter(r.URL.Query(), "product", func(i model.FeedingScheduleItem) string { return i.ProductID }),
	)
	sort.SliceStable(items, func(a, b int) bool { return items[a].Week < items[b].Week })
	listCollection(w, r, items, nil, preds...)
}

// GetFeedingScheduleItem handles GET /api/v1/feeding-schedule-items/{id}.
func (h *Handler) GetFeedingScheduleItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireRecord(w, r, h.scheduleItems, chi.URLParam(r, "id"), "feeding schedule item")
	if !ok {
		return
	}
	WriteSuccess(w, item, nil)
}

// checkItemRefs verifies the schedule and product references exist and the
// week fits inside the schedule's week count.
func (h *Handler) checkItemRefs(w http.ResponseWriter, r *http.Request, scheduleID, productID string, week int64) bool {
	if scheduleID != "" {
		schedule, ok := requireRecord(w, r, h.schedules, scheduleID, "feeding schedule")
		if !ok {
			return false
		}
		if schedule.WeekCount > 0 && week > schedule.WeekCount {
			WriteValidationError(w, map[string]string{"week": "Beyond the schedule's week count"})
			return false
		}
	}
	if productID != "" {
		if _, ok := requireRecord(w, r, h.products, productID, "product"); !ok {
			return false
		}
	}
	return true
}

// CreateFeedingScheduleItem handles POST /api/v1/feeding-schedule-items.
func (h *Handler) CreateFeedingScheduleItem(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedingScheduleItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item := model.DefaultFeedingScheduleItem()
	item.ScheduleID = req.ScheduleID
	item.ProductID = req.ProductID
	if req.Week != 0 {
		item.Week = req.Week
	}
	item.DosePerLiter = req.DosePerLiter
	if req.Note != nil {
		item.Note = req.Note
	}

	if errs := item.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !h.checkItemRefs(w, r, item.ScheduleID, item.ProductID, item.Week) {
		return
	}

	if err := h.scheduleItems.Create(r.Context(), &item); err != nil {
		writeStoreError(w, r, err, "feeding schedule item")
		return
	}

	h.contentChanged(r.Context(), "feeding schedule item created", middleware.GetUserEmail(r),
		map[string]any{"id": item.ID, "schedule_id": item.ScheduleID, "week": item.Week})
	WriteCreated(w, item)
}

// UpdateFeedingScheduleItem handles PUT /api/v1/feeding-schedule-items/{id}.
func (h *Handler) UpdateFeedingScheduleItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeedingScheduleItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	current, ok := requireRecord(w, r, h.scheduleItems, id, "feeding schedule item")
	if !ok {
		return
	}

	// Check the merged result, not just the changed fields: moving an item
	// to a later week must respect the (possibly unchanged) schedule's
	// week count.
	scheduleID, productID, week := current.ScheduleID, "", current.Week
	if req.ScheduleID != nil {
		scheduleID = *req.ScheduleID
	}
	if req.ProductID != nil {
		productID = *req.ProductID
	}
	if req.Week != nil {
		week = *req.Week
	}
	if !h.checkItemRefs(w, r, scheduleID, productID, week) {
		return
	}

	item, err := h.scheduleItems.Modify(r.Context(), id, func(i *model.FeedingScheduleItem) error {
		if err := checkVersion(req.Version, i.Version); err != nil {
			return err
		}
		if req.ScheduleID != nil {
			i.ScheduleID = *req.ScheduleID
		}
		if req.ProductID != nil {
			i.ProductID = *req.ProductID
		}
		if req.Week != nil {
			i.Week = *req.Week
		}
		if req.DosePerLiter != nil {
			i.DosePerLiter = *req.DosePerLiter
		}
		if req.Note != nil {
			i.Note = *req.Note
		}
		if errs := i.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "feeding schedule item")
		return
	}

	h.contentChanged(r.Context(), "feeding schedule item updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, item, nil)
}

// DeleteFeedingScheduleItem handles DELETE /api/v1/feeding-schedule-items/{id}?confirm=true.
func (h *Handler) DeleteFeedingScheduleItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.scheduleItems.Delete(r.Context(), id)
	}, "feeding schedule item", id)
}
