// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seed creates the initial admin account and a small bilingual
// demo catalog on first start.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/groplan-go/internal/auth"
	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Run creates the initial admin user and, on an empty catalog, a small
// bilingual demo data set. Safe to run repeatedly.
func Run(ctx context.Context, db *sql.DB) error {
	users := store.MustGateway[model.AdminUser](db, store.TableAdminUsers)

	_, err := users.FindByField(ctx, "email", DefaultAdminEmail)
	switch {
	case err == nil:
		slog.Info("admin user already exists, skipping seed")
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	admin := model.DefaultAdminUser()
	admin.Email = DefaultAdminEmail
	admin.Name = DefaultAdminName
	admin.PasswordHash = passwordHash
	admin.Role = model.RoleAdmin
	if err := users.Create(ctx, &admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	slog.Info("created default admin user", "email", DefaultAdminEmail)

	if err := seedCatalog(ctx, db); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	return nil
}

// seedCatalog inserts demo brands, categories, and products when the
// catalog is empty.
func seedCatalog(ctx context.Context, db *sql.DB) error {
	brands := store.MustGateway[model.Brand](db, store.TableBrands)
	categories := store.MustGateway[model.Category](db, store.TableCategories)
	products := store.MustGateway[model.Product](db, store.TableProducts)

	_, total, err := brands.List(ctx, store.ListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	brand := model.DefaultBrand()
	brand.Name = l10n.NewFrom("GreenGro", "GreenGro")
	brand.Slug = "greengro"
	brand.Color = "#10b981"
	if err := brands.Create(ctx, &brand); err != nil {
		return err
	}

	category := model.DefaultCategory()
	category.Name = l10n.NewFrom("Grow Lights", "Yetiştirme Işıkları")
	category.Description = l10n.NewFrom("LED and HPS lighting", "LED ve HPS aydınlatma")
	category.Slug = "grow-lights"
	if err := categories.Create(ctx, &category); err != nil {
		return err
	}

	product := model.DefaultProduct()
	product.Name = l10n.NewFrom("Helios 600W LED Panel", "Helios 600W LED Panel")
	product.Description = l10n.NewFrom("Full-spectrum LED panel for tents up to 120x120.", "")
	product.SKU = "GG-LED-600"
	product.Slug = "helios-600w-led-panel"
	product.Price = 349.90
	product.BrandID = brand.ID
	product.CategoryID = category.ID
	product.Specs = map[string]any{"watts": float64(600), "dimmable": true}
	if err := products.Create(ctx, &product); err != nil {
		return err
	}

	slog.Info("seeded demo catalog", "brands", 1, "categories", 1, "products", 1)
	return nil
}
