// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo generates robots.txt and sitemap.xml for the public catalog.
package seo

import (
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for the sitemap reference
	DisallowAll   bool     // Block all crawlers (for staging sites)
	DisallowPaths []string // Additional paths to disallow
}

// RobotsBuilder builds robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a new robots.txt builder.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build generates the robots.txt content. The admin API and health probes
// are always excluded from crawling.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")

	if b.config.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		disallow := append([]string{"/api/", "/health"}, b.config.DisallowPaths...)
		for _, p := range disallow {
			sb.WriteString("Disallow: ")
			sb.WriteString(p)
			sb.WriteString("\n")
		}
	}

	if b.config.SiteURL != "" && !b.config.DisallowAll {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimRight(b.config.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}

	return sb.String()
}
