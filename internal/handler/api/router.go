// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/groplan-go/internal/config"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
)

// requestTimeout bounds every handler; long-running work does not belong
// in the request path.
const requestTimeout = 30 * time.Second

// publicRateLimit throttles the unauthenticated read side per client IP.
const (
	publicRateLimit = 10.0
	publicRateBurst = 30
)

// Router builds the HTTP routing tree: the admin API under /api/v1, the
// storefront read side under /public and the health probes under /health.
func (h *Handler) Router(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(h.sm.LoadAndSave)
	r.Use(middleware.Language(h.sm))

	r.Get("/health", h.Health)
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Get("/robots.txt", h.Robots)
	r.Get("/sitemap.xml", h.Sitemap)

	// Public storefront read side: unauthenticated, rate limited, no CSRF
	// state to protect.
	r.Route("/public/{lang}", func(r chi.Router) {
		r.Use(middleware.RateLimit(publicRateLimit, publicRateBurst))
		r.Get("/products", h.PublicListProducts)
		r.Get("/products/{slug}", h.PublicGetProduct)
		r.Get("/brands", h.PublicListBrands)
		r.Get("/categories", h.PublicListCategories)
		r.Get("/presets", h.PublicListPresets)
		r.Get("/feeding-schedules/{slug}", h.PublicGetSchedule)
		r.Get("/posts", h.PublicListPosts)
		r.Get("/posts/{slug}", h.PublicGetPost)
	})

	// Admin API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

		r.Get("/status", h.Status)

		// Session endpoints reachable without an authenticated session.
		r.Group(func(r chi.Router) {
			if h.loginGuard != nil {
				r.Use(h.loginGuard.Middleware())
			}
			r.Post("/login", h.Login)
		})
		r.Post("/logout", h.Logout)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.sm))
			r.Use(middleware.LoadUser(h.sm, h.db))

			r.Get("/me", h.Me)
			r.Post("/language", h.SetLanguage)

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", h.ListBrands)
				r.Post("/", h.CreateBrand)
				r.Get("/{id}", h.GetBrand)
				r.Put("/{id}", h.UpdateBrand)
				r.Delete("/{id}", h.DeleteBrand)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Get("/{id}", h.GetCategory)
				r.Put("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Get("/{id}", h.GetProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})
			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", h.ListVendors)
				r.Post("/", h.CreateVendor)
				r.Get("/{id}", h.GetVendor)
				r.Put("/{id}", h.UpdateVendor)
				r.Delete("/{id}", h.DeleteVendor)
			})
			r.Route("/vendor-products", func(r chi.Router) {
				r.Get("/", h.ListVendorProducts)
				r.Post("/", h.CreateVendorProduct)
				r.Get("/{id}", h.GetVendorProduct)
				r.Put("/{id}", h.UpdateVendorProduct)
				r.Delete("/{id}", h.DeleteVendorProduct)
			})
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.ListBlogPosts)
				r.Post("/", h.CreateBlogPost)
				r.Get("/{id}", h.GetBlogPost)
				r.Put("/{id}", h.UpdateBlogPost)
				r.Delete("/{id}", h.DeleteBlogPost)
			})
			r.Route("/feeding-schedules", func(r chi.Router) {
				r.Get("/", h.ListFeedingSchedules)
				r.Post("/", h.CreateFeedingSchedule)
				r.Get("/{id}", h.GetFeedingSchedule)
				r.Put("/{id}", h.UpdateFeedingSchedule)
				r.Delete("/{id}", h.DeleteFeedingSchedule)
			})
			r.Route("/feeding-schedule-items", func(r chi.Router) {
				r.Get("/", h.ListFeedingScheduleItems)
				r.Post("/", h.CreateFeedingScheduleItem)
				r.Get("/{id}", h.GetFeedingScheduleItem)
				r.Put("/{id}", h.UpdateFeedingScheduleItem)
				r.Delete("/{id}", h.DeleteFeedingScheduleItem)
			})
			r.Route("/presets", func(r chi.Router) {
				r.Get("/", h.ListPresetSets)
				r.Post("/", h.CreatePresetSet)
				r.Get("/{id}", h.GetPresetSet)
				r.Put("/{id}", h.UpdatePresetSet)
				r.Delete("/{id}", h.DeletePresetSet)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/", h.Upload)
				r.Delete("/{id}", h.DeleteUpload)
			})
			r.Post("/translate", h.Translate)

			// Admin-only surface.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleAdmin))
				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.ListUsers)
					r.Post("/", h.CreateUser)
					r.Get("/{id}", h.GetUser)
					r.Put("/{id}", h.UpdateUser)
					r.Delete("/{id}", h.DeleteUser)
				})
				r.Get("/events", h.ListEvents)
			})
		})
	})

	// Uploaded files served directly from disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
