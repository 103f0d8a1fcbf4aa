// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver      string `env:"GROPLAN_DB_DRIVER" envDefault:"sqlite"` // sqlite or mysql
	DBPath        string `env:"GROPLAN_DB_PATH" envDefault:"./data/groplan.db"`
	DBDSN         string `env:"GROPLAN_DB_DSN"` // MySQL DSN, required when driver is mysql
	SessionSecret string `env:"GROPLAN_SESSION_SECRET,required"`
	ServerHost    string `env:"GROPLAN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"GROPLAN_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"GROPLAN_ENV" envDefault:"development"`
	LogLevel      string `env:"GROPLAN_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"GROPLAN_UPLOADS_DIR" envDefault:"./uploads"`
	SiteURL       string `env:"GROPLAN_SITE_URL" envDefault:"http://localhost:8080"` // Canonical base URL for robots.txt and sitemap.xml

	// Cache configuration
	RedisURL     string `env:"GROPLAN_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"GROPLAN_CACHE_PREFIX" envDefault:"groplan:"` // Redis key prefix
	CacheTTL     int    `env:"GROPLAN_CACHE_TTL" envDefault:"300"`         // Default cache TTL in seconds
	CacheMaxSize int    `env:"GROPLAN_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Translation assist (optional)
	OpenAIAPIKey string `env:"GROPLAN_OPENAI_API_KEY"`
	OpenAIModel  string `env:"GROPLAN_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// GeoIP configuration
	GeoIPDBPath string `env:"GROPLAN_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"GROPLAN_DO_SEED" envDefault:"false"` // Enable demo data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TranslateEnabled returns true if the translation assist service is configured.
func (c Config) TranslateEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return nil, fmt.Errorf("GROPLAN_DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "mysql" && cfg.DBDSN == "" {
		return nil, fmt.Errorf("GROPLAN_DB_DSN is required when GROPLAN_DB_DRIVER=mysql")
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("GROPLAN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("GROPLAN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("GROPLAN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
