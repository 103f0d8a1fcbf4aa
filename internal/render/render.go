// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts stored markdown content into sanitized HTML for
// the public endpoints. Content is operator-authored but rendered into
// third-party pages, so the output always passes through the sanitizer.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// UGCPolicy allows the usual formatting tags and strips scripts, event
// handlers and javascript: URLs.
var sanitizer = bluemonday.UGCPolicy()

// Markdown converts markdown source to sanitized HTML.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// SanitizeHTML strips unsafe markup from an HTML fragment without any
// markdown conversion.
func SanitizeHTML(fragment string) string {
	return sanitizer.Sanitize(fragment)
}
