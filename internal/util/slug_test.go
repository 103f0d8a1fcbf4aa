// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "GreenGro", "greengro"},
		{"spaces", "Grow Tent Kit", "grow-tent-kit"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"turkish", "Yetiştirme Çadırı", "yetistirme-cadiri"},
		{"turkish dotless i", "Işık Paneli", "isik-paneli"},
		{"punctuation", "600W LED: Full Spectrum!", "600w-led-full-spectrum"},
		{"multiple hyphens", "a -- b", "a-b"},
		{"leading trailing", " -hello- ", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"greengro", "grow-tent-kit", "600w-led", "a"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "Hello", "grow tent", "-lead", "trail-", "a--b", "çadır"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
