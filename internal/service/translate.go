// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/groplan-go/internal/l10n"
)

// TranslateService drafts the missing language slot of a localized field so
// an editor doesn't start from a blank box. Drafts are suggestions; nothing
// is written to the store until the editor saves the form.
type TranslateService struct {
	client openai.Client
	model  string
}

// NewTranslateService creates a translation service backed by the OpenAI API.
func NewTranslateService(apiKey, model string) *TranslateService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &TranslateService{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

var languageNames = map[string]string{
	l10n.LangEN: "English",
	l10n.LangTR: "Turkish",
}

// Translate renders text from one supported language into the other.
func (s *TranslateService) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to translate")
	}
	from, ok := languageNames[fromLang]
	if !ok {
		return "", fmt.Errorf("unsupported source language %q", fromLang)
	}
	to, ok := languageNames[toLang]
	if !ok {
		return "", fmt.Errorf("unsupported target language %q", toLang)
	}
	if fromLang == toLang {
		return text, nil
	}

	system := fmt.Sprintf(
		"You translate product catalog copy for an indoor gardening store from %s to %s. "+
			"Keep brand names, SKUs, units and numbers unchanged. Reply with the translation only.",
		from, to)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// FillMissing returns a copy of text with empty language slots drafted from
// the filled one. A Text with both or neither slot filled passes through.
func (s *TranslateService) FillMissing(ctx context.Context, text l10n.Text) (l10n.Text, error) {
	missing := text.MissingLanguages()
	if len(missing) == 0 || len(missing) == len(l10n.Languages) {
		return text, nil
	}

	var source string
	for _, lang := range l10n.Languages {
		if text[lang] != "" {
			source = lang
			break
		}
	}

	out := text
	for _, lang := range missing {
		translated, err := s.Translate(ctx, text[source], source, lang)
		if err != nil {
			return text, err
		}
		out = out.Set(lang, translated)
	}
	return out, nil
}
