// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package l10n

import (
	"encoding/json"
	"testing"
)

func TestNewHasAllLanguages(t *testing.T) {
	text := New()
	if len(text) != len(Languages) {
		t.Fatalf("New() has %d keys, want %d", len(text), len(Languages))
	}
	for _, lang := range Languages {
		if v, ok := text[lang]; !ok || v != "" {
			t.Errorf("New()[%q] = %q, %v; want empty and present", lang, v, ok)
		}
	}
}

func TestGetFallback(t *testing.T) {
	tests := []struct {
		name string
		text Text
		lang string
		want string
	}{
		{"exact match", NewFrom("Tent", "Çadır"), LangTR, "Çadır"},
		{"empty falls back to en", NewFrom("Tent", ""), LangTR, "Tent"},
		{"missing key falls back to en", Text{LangEN: "Tent"}, LangTR, "Tent"},
		{"nil text reads empty", nil, LangEN, ""},
		{"all empty", New(), LangTR, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Get(tt.lang); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestSetPreservesOtherLanguages(t *testing.T) {
	orig := NewFrom("Understanding PPFD", "PPFD Nedir")
	updated := orig.Set(LangEN, "Understanding PPFD Deeply")

	if updated[LangTR] != "PPFD Nedir" {
		t.Errorf("Set(en) mutated tr: got %q", updated[LangTR])
	}
	if updated[LangEN] != "Understanding PPFD Deeply" {
		t.Errorf("Set(en) = %q", updated[LangEN])
	}
	// The original must be untouched (copy-on-write).
	if orig[LangEN] != "Understanding PPFD" {
		t.Errorf("Set mutated the receiver: %q", orig[LangEN])
	}
}

func TestRoundTrip(t *testing.T) {
	orig := NewFrom("Understanding PPFD", "")
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Text
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, lang := range Languages {
		if back[lang] != orig[lang] {
			t.Errorf("round trip changed %q: %q -> %q", lang, orig[lang], back[lang])
		}
	}
}

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantEN  string
	}{
		{"valid", `{"en":"Grow Tent","tr":"Yetiştirme Çadırı"}`, false, "Grow Tent"},
		{"partial is fine", `{"en":"Grow Tent"}`, false, "Grow Tent"},
		{"malformed json", `{"en":"Grow Tent"`, true, ""},
		{"unknown language", `{"en":"Grow Tent","de":"Zelt"}`, true, ""},
		{"not an object", `["en","tr"]`, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRaw(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRaw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got[LangEN] != tt.wantEN {
				t.Errorf("ParseRaw()[en] = %q, want %q", got[LangEN], tt.wantEN)
			}
			// Every configured language must be present after a parse.
			for _, lang := range Languages {
				if _, ok := got[lang]; !ok {
					t.Errorf("ParseRaw() missing language %q", lang)
				}
			}
		})
	}
}

func TestParseRawFailureLeavesPreviousValue(t *testing.T) {
	committed := NewFrom("Understanding PPFD", "PPFD Nedir")

	parsed, err := ParseRaw(`{"en": broken`)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if parsed != nil {
		t.Fatalf("failed parse returned a value: %v", parsed)
	}
	// Caller keeps the committed value untouched.
	if committed[LangEN] != "Understanding PPFD" || committed[LangTR] != "PPFD Nedir" {
		t.Errorf("committed value changed: %v", committed)
	}
}

func TestIsComplete(t *testing.T) {
	if New().IsComplete() {
		t.Error("empty text reported complete")
	}
	if NewFrom("Tent", "").IsComplete() {
		t.Error("partial text reported complete")
	}
	if !NewFrom("Tent", "Çadır").IsComplete() {
		t.Error("full text reported incomplete")
	}
	if NewFrom(" ", "Çadır").IsComplete() {
		t.Error("whitespace-only value reported complete")
	}
}

func TestMissingLanguages(t *testing.T) {
	missing := NewFrom("Tent", "").MissingLanguages()
	if len(missing) != 1 || missing[0] != LangTR {
		t.Errorf("MissingLanguages() = %v, want [tr]", missing)
	}
	if got := NewFrom("Tent", "Çadır").MissingLanguages(); len(got) != 0 {
		t.Errorf("MissingLanguages() = %v, want none", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"tr", "tr"},
		{"TR", "tr"},
		{"en", "en"},
		{"de", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
