// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: event log pruning
// and GeoIP database reloads.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/groplan-go/internal/geoip"
	"github.com/olegiv/groplan-go/internal/store"
)

// EventRetention is how long event log entries are kept.
const EventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron runner and the maintenance jobs.
type Scheduler struct {
	events *store.Events
	geo    *geoip.Resolver
	warm   func(context.Context) error
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler. geo and warm may be nil when GeoIP or cache
// warming is not configured.
func New(db *sql.DB, geo *geoip.Resolver, warm func(context.Context) error, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		events: store.NewEvents(db),
		geo:    geo,
		warm:   warm,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Nightly at 03:15: prune old events.
	if _, err := s.cron.AddFunc("15 3 * * *", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune events", "error", err)
		}
	}); err != nil {
		return err
	}

	// Weekly on Sunday at 04:00: pick up a refreshed GeoIP database.
	if s.geo != nil && s.geo.IsEnabled() {
		if _, err := s.cron.AddFunc("0 4 * * 0", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Error("failed to reload geoip database", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	// Every 10 minutes: keep the public catalog cache warm.
	if s.warm != nil {
		if _, err := s.cron.AddFunc("*/10 * * * *", func() {
			if err := s.warm(context.Background()); err != nil {
				s.logger.Error("failed to warm public cache", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) pruneEvents() error {
	cutoff := time.Now().Add(-EventRetention)
	pruned, err := s.events.PruneOlderThan(context.Background(), cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("pruned old events", "count", pruned, "cutoff", cutoff)
	}
	return nil
}
