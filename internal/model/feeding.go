// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/store"
)

// FeedingSchedule represents a week-by-week nutrient plan operators attach
// products to.
type FeedingSchedule struct {
	store.Meta
	Name        l10n.Text `json:"name"`
	Description l10n.Text `json:"description"`
	Slug        string    `json:"slug"`
	WeekCount   int64     `json:"week_count"`
	IsActive    bool      `json:"is_active"`
}

// DefaultFeedingSchedule returns the create-mode seed for a new schedule form.
func DefaultFeedingSchedule() FeedingSchedule {
	return FeedingSchedule{
		Name:        l10n.New(),
		Description: l10n.New(),
		WeekCount:   0,
		IsActive:    true,
	}
}

// Validate checks the required fields before create/update.
func (s *FeedingSchedule) Validate() FieldErrors {
	errs := make(FieldErrors)
	requireKey(errs, "slug", s.Slug)
	requireLocalized(errs, "name", s.Name)
	if s.WeekCount < 0 {
		errs["week_count"] = "Must not be negative"
	}
	return errs
}

// FeedingScheduleItem is one dose entry in a schedule: product X at week N.
type FeedingScheduleItem struct {
	store.Meta
	ScheduleID   string    `json:"schedule_id"` // references feeding_schedules
	ProductID    string    `json:"product_id"`  // references products
	Week         int64     `json:"week"`
	DosePerLiter float64   `json:"dose_per_liter"` // ml/L
	Note         l10n.Text `json:"note"`
}

// DefaultFeedingScheduleItem returns the create-mode seed for a new item form.
func DefaultFeedingScheduleItem() FeedingScheduleItem {
	return FeedingScheduleItem{
		Note: l10n.New(),
		Week: 1,
	}
}

// Validate checks the required fields before create/update.
func (i *FeedingScheduleItem) Validate() FieldErrors {
	errs := make(FieldErrors)
	if i.ScheduleID == "" {
		errs["schedule_id"] = "Required"
	}
	if i.ProductID == "" {
		errs["product_id"] = "Required"
	}
	if i.Week < 1 {
		errs["week"] = "Must be 1 or greater"
	}
	if i.DosePerLiter < 0 {
		errs["dose_per_liter"] = "Must not be negative"
	}
	return errs
}
