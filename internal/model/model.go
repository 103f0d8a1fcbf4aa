// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities persisted through the table
// gateway. Every entity embeds store.Meta, carries localized text fields
// for anything user-facing, and provides a Default constructor (the
// create-mode form seed) plus Validate (the client-side required-field
// check run before anything is sent to the store).
package model

import (
	"strings"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/util"
)

// FieldErrors maps a field name to a human-readable validation message.
// An empty map means the entity may be submitted.
type FieldErrors map[string]string

// requireKey validates a unique human-readable key field (slug, sku, code).
func requireKey(errs FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "Required"
		return
	}
	if field == "slug" && !util.IsValidSlug(value) {
		errs[field] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
}

// requireLocalized validates that the primary-language slot of a localized
// field is filled. Other languages may stay empty for incremental
// translation.
func requireLocalized(errs FieldErrors, field string, text l10n.Text) {
	if strings.TrimSpace(text[l10n.DefaultLang]) == "" {
		errs[field] = "Required in " + l10n.DefaultLang
	}
}
