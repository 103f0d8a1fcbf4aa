// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist in its collection.
	// Callers render this as an explicit "not found" outcome, never as a
	// generic backend failure.
	ErrNotFound = errors.New("record not found")

	// ErrStale is returned when an update carries a version that no longer
	// matches the stored row. The operator should reload and retry.
	ErrStale = errors.New("record version is stale, reload and retry")

	// ErrUnknownTable is returned when a gateway is constructed for a
	// collection that has no backing table.
	ErrUnknownTable = errors.New("unknown collection table")
)
