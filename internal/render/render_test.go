// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownBasic(t *testing.T) {
	out, err := Markdown("# Week 1\n\nMix **2 ml/L** of base nutrient.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>2 ml/L</strong>")
}

func TestMarkdownStripsScript(t *testing.T) {
	out, err := Markdown("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
}

func TestMarkdownTable(t *testing.T) {
	src := "| Week | Dose |\n|------|------|\n| 1 | 2 ml/L |\n"
	out, err := Markdown(src)
	require.NoError(t, err)
	assert.Contains(t, out, "<table")
}

func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">ok</p><iframe src="x"></iframe>`)
	assert.Equal(t, "<p>ok</p>", strings.TrimSpace(out))
}
