// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

// Meta holds the fields the gateway owns on every record: the opaque
// server-assigned id, the optimistic-concurrency version, and the server-set
// timestamps. Entities embed Meta and never write these fields themselves.
type Meta struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record returns the embedded Meta, satisfying the Record interface.
func (m *Meta) Record() *Meta { return m }

// Record is implemented by every entity persisted through a Gateway.
type Record interface {
	Record() *Meta
}

// RecordPtr constrains a gateway's pointer type to *T implementing Record.
type RecordPtr[T any] interface {
	*T
	Record
}
