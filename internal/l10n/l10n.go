// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package l10n provides the localized value type used for every bilingual
// text field in the content model. A value holds one string per configured
// language; missing or empty languages fall back to the default language
// at read time so partially translated content stays renderable.
package l10n

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Supported content languages.
const (
	LangEN = "en"
	LangTR = "tr"
)

// DefaultLang is the fallback language for empty or missing values.
const DefaultLang = LangEN

// Languages is the closed set of content languages, default first.
var Languages = []string{LangEN, LangTR}

// Text maps a language code to a string value. The zero value (nil map)
// is usable and reads as empty in every language.
type Text map[string]string

// New returns a Text with every configured language present and empty,
// the seed state for a new-entity form.
func New() Text {
	t := make(Text, len(Languages))
	for _, lang := range Languages {
		t[lang] = ""
	}
	return t
}

// NewFrom returns a Text seeded with the given English and Turkish values.
func NewFrom(en, tr string) Text {
	return Text{LangEN: en, LangTR: tr}
}

// Get returns the value for lang, falling back to the default language
// when the requested language is missing or empty. Returns "" when the
// default language is empty too.
func (t Text) Get(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[DefaultLang]
}

// Set returns a copy of t with only lang replaced. All other languages
// are preserved verbatim, so concurrent edits to one language never
// disturb unsaved input in another.
func (t Text) Set(lang, value string) Text {
	out := make(Text, len(Languages))
	for _, l := range Languages {
		out[l] = t[l]
	}
	out[lang] = value
	return out
}

// IsComplete reports whether every configured language has a non-empty
// value. Publishing gates on this; drafts may be partial.
func (t Text) IsComplete() bool {
	for _, lang := range Languages {
		if strings.TrimSpace(t[lang]) == "" {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no configured language has a value.
func (t Text) IsEmpty() bool {
	for _, lang := range Languages {
		if strings.TrimSpace(t[lang]) != "" {
			return false
		}
	}
	return true
}

// Values returns the per-language values in a stable order, for search
// indexing and display.
func (t Text) Values() []string {
	out := make([]string, 0, len(Languages))
	for _, lang := range Languages {
		out = append(out, t[lang])
	}
	return out
}

// IsSupported reports whether lang is one of the configured languages.
func IsSupported(lang string) bool {
	for _, l := range Languages {
		if l == strings.ToLower(lang) {
			return true
		}
	}
	return false
}

// Normalize returns lang lowercased if supported, otherwise DefaultLang.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if IsSupported(lang) {
		return lang
	}
	return DefaultLang
}

// Raw serializes t to indented JSON for raw-mode editing.
func (t Text) Raw() string {
	if t == nil {
		t = New()
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ParseRaw parses raw-mode JSON into a Text. Malformed JSON or unknown
// language keys return an error so the caller can keep the previously
// committed value; a partial or corrupted commit is never produced.
func ParseRaw(raw string) (Text, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parsing localized value: %w", err)
	}
	for key := range m {
		if !IsSupported(key) {
			return nil, fmt.Errorf("parsing localized value: unknown language %q (supported: %s)",
				key, strings.Join(Languages, ", "))
		}
	}
	t := New()
	for key, v := range m {
		t[strings.ToLower(key)] = v
	}
	return t, nil
}

// MissingLanguages returns the languages without a value, sorted, for
// translation-status display in the admin list views.
func (t Text) MissingLanguages() []string {
	var missing []string
	for _, lang := range Languages {
		if strings.TrimSpace(t[lang]) == "" {
			missing = append(missing, lang)
		}
	}
	sort.Strings(missing)
	return missing
}
