// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IPs to countries with a MaxMind
// GeoLite2-Country database. Login audit events carry the resolved country
// so an operator can spot sign-ins from unexpected places. Lookups degrade
// to empty strings when no database is configured.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

var privateCIDRs []*net.IPNet

func init() {
	for _, block := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",
		"fe80::/10",
	} {
		if _, cidr, err := net.ParseCIDR(block); err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Resolver handles IP-to-country lookups.
type Resolver struct {
	mu        sync.RWMutex
	db        *maxminddb.Reader
	dbPath    string
	dbModTime time.Time
	enabled   bool
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewResolver creates a resolver for the database at dbPath. An empty path
// disables lookups without error.
func NewResolver(dbPath string) (*Resolver, error) {
	r := &Resolver{dbPath: dbPath}
	if dbPath == "" {
		return r, nil
	}
	if err := r.load(); err != nil {
		return r, err
	}
	return r, nil
}

// load opens or reloads the database. Caller must hold the write lock or
// exclusive ownership.
func (r *Resolver) load() error {
	info, err := os.Stat(r.dbPath)
	if err != nil {
		r.enabled = false
		return fmt.Errorf("geoip database: %w", err)
	}

	// Skip reload if unchanged.
	if r.db != nil && info.ModTime().Equal(r.dbModTime) {
		return nil
	}

	if r.db != nil {
		_ = r.db.Close()
		r.db = nil
	}

	db, err := maxminddb.Open(r.dbPath)
	if err != nil {
		r.enabled = false
		return fmt.Errorf("open geoip database: %w", err)
	}

	r.db = db
	r.dbModTime = info.ModTime()
	r.enabled = true
	return nil
}

// Reload re-opens the database if the file changed on disk. Safe to call
// from the scheduler.
func (r *Resolver) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dbPath == "" {
		return nil
	}
	return r.load()
}

// Country returns the 2-letter ISO country code for an IP address, "LOCAL"
// for private or loopback addresses, and "" when the IP is invalid or no
// database is loaded.
func (r *Resolver) Country(ip string) string {
	// Strip a port if the caller passed RemoteAddr verbatim.
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivateIP(parsed) {
		return "LOCAL"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.enabled || r.db == nil {
		return ""
	}

	var record countryRecord
	if err := r.db.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// IsEnabled returns whether a database is loaded.
func (r *Resolver) IsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Close closes the underlying database.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		r.enabled = false
		return err
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
