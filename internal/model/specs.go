// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strconv"

// SpecPair is one (key, value) entry as typed into the specs editor, before
// coercion. The editor submits an ordered sequence; duplicate keys resolve
// last-write-wins.
type SpecPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CoerceSpecValue converts a spec value's literal text to its typed form:
// "true"/"false" become bool, numeric-looking text becomes float64,
// everything else stays a string. A value that is intentionally the string
// "123" cannot be distinguished from the number 123 here; coercion wins.
func CoerceSpecValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

// SpecsFromPairs builds the specs map from the editor's ordered pairs.
// Keys are unique within the result; on duplicates the last entry wins.
// Pairs with an empty key are dropped.
func SpecsFromPairs(pairs []SpecPair) map[string]any {
	specs := make(map[string]any, len(pairs))
	for _, p := range pairs {
		if p.Key == "" {
			continue
		}
		specs[p.Key] = CoerceSpecValue(p.Value)
	}
	return specs
}
