// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filter implements the list-view search and filter convention:
// free-text search plus discrete filters applied with AND semantics over an
// already-fetched set of entities. Filtering is deliberately client-side
// (in-process) rather than pushed into queries, mirroring how the admin
// list views consume a loaded page.
package filter

import "strings"

// Matches reports whether haystack contains term, case-insensitively.
// An empty term matches everything.
func Matches(haystack, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(term))
}

// Search returns the items whose searchable fields contain term. The fields
// callback yields the values to match against: primary-language slots of
// localized fields plus scalar identifiers like slug or SKU. An empty term
// returns the input unchanged.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if Matches(field, term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Predicate is one discrete filter over an entity.
type Predicate[T any] func(T) bool

// Apply keeps the items satisfying every predicate. No predicates means the
// input is returned unchanged, so clearing all filters restores the full
// fetched set.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
