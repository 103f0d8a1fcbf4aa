// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry is one public resource to include in the sitemap.
type Entry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML for the public catalog, one URL per
// language per resource.
type SitemapBuilder struct {
	siteURL string
	langs   []string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder rooted at siteURL for the given
// language codes.
func NewSitemapBuilder(siteURL string, langs []string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimRight(siteURL, "/"),
		langs:   langs,
	}
}

// AddProducts adds the product detail pages.
func (b *SitemapBuilder) AddProducts(entries []Entry) *SitemapBuilder {
	return b.add("products", entries, ChangeFreqWeekly, "0.8")
}

// AddPosts adds the blog post pages.
func (b *SitemapBuilder) AddPosts(entries []Entry) *SitemapBuilder {
	return b.add("posts", entries, ChangeFreqMonthly, "0.6")
}

// AddPresets adds the preset set pages.
func (b *SitemapBuilder) AddPresets(entries []Entry) *SitemapBuilder {
	return b.add("presets", entries, ChangeFreqWeekly, "0.7")
}

// AddSchedules adds the feeding schedule pages.
func (b *SitemapBuilder) AddSchedules(entries []Entry) *SitemapBuilder {
	return b.add("feeding-schedules", entries, ChangeFreqMonthly, "0.5")
}

func (b *SitemapBuilder) add(section string, entries []Entry, freq ChangeFreq, priority string) *SitemapBuilder {
	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		lastMod := ""
		if !e.UpdatedAt.IsZero() {
			lastMod = e.UpdatedAt.UTC().Format("2006-01-02")
		}
		for _, lang := range b.langs {
			b.urls = append(b.urls, SitemapURL{
				Loc:        b.siteURL + "/public/" + lang + "/" + section + "/" + e.Slug,
				LastMod:    lastMod,
				ChangeFreq: freq,
				Priority:   priority,
			})
		}
	}
	return b
}

// Build serializes the sitemap to XML with the standard header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sm := Sitemap{XMLNS: XMLNamespace, URLs: b.urls}
	out, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// Len returns how many URL entries have been added.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}
