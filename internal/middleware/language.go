// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/session"
)

// LanguageCookieName is the cookie carrying the language preference for
// anonymous (public API) visitors.
const LanguageCookieName = "groplan_lang"

// Language creates middleware that resolves the request language and stores
// it in the context. Priority order:
//  1. Query parameter ?lang=XX (explicit switch, persisted to session and cookie)
//  2. Session preference (logged-in operators)
//  3. Cookie preference
//  4. Accept-Language header
//  5. Default language
func Language(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLang(sm, w, r)
			ctx := context.WithValue(r.Context(), ContextKeyLang, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLang(sm *scs.SessionManager, w http.ResponseWriter, r *http.Request) string {
	if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && l10n.IsSupported(q) {
		if sm != nil {
			sm.Put(r.Context(), session.KeyLang, q)
		}
		SetLanguageCookie(w, q)
		return q
	}

	if sm != nil {
		if s := sm.GetString(r.Context(), session.KeyLang); s != "" && l10n.IsSupported(s) {
			return s
		}
	}

	if cookie, err := r.Cookie(LanguageCookieName); err == nil {
		if c := strings.ToLower(cookie.Value); l10n.IsSupported(c) {
			return c
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}

	return l10n.DefaultLang
}

// GetLang retrieves the resolved request language, defaulting when the
// Language middleware did not run.
func GetLang(r *http.Request) string {
	lang, ok := r.Context().Value(ContextKeyLang).(string)
	if !ok || lang == "" {
		return l10n.DefaultLang
	}
	return lang
}

// SetLanguageCookie persists the language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
