// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "github.com/olegiv/groplan-go/internal/store"

// Event levels
const (
	EventLevelInfo    = store.EventLevelInfo
	EventLevelWarning = store.EventLevelWarning
	EventLevelError   = store.EventLevelError
)

// Event categories
const (
	EventCategoryAuth    = store.EventCategoryAuth
	EventCategoryContent = store.EventCategoryContent
	EventCategoryUpload  = store.EventCategoryUpload
	EventCategorySystem  = store.EventCategorySystem
)

// Event is one audit log entry. The row type lives in store next to the
// event log queries; the alias keeps model as the single import for
// entity types used by handlers and services.
type Event = store.Event
