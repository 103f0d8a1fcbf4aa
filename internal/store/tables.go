// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

// Collection table names. Every gateway must be constructed for one of
// these; the names are interpolated into SQL and are never taken from
// request input.
const (
	TableBrands               = "brands"
	TableCategories           = "categories"
	TableProducts             = "products"
	TableVendors              = "vendors"
	TableVendorProducts       = "vendor_products"
	TableBlogPosts            = "blog_posts"
	TableFeedingSchedules     = "feeding_schedules"
	TableFeedingScheduleItems = "feeding_schedule_items"
	TablePresetSets           = "preset_sets"
	TableAdminUsers           = "admin_users"
)

// Tables lists every collection table, in migration order.
var Tables = []string{
	TableBrands,
	TableCategories,
	TableProducts,
	TableVendors,
	TableVendorProducts,
	TableBlogPosts,
	TableFeedingSchedules,
	TableFeedingScheduleItems,
	TablePresetSets,
	TableAdminUsers,
}

// KnownTable reports whether name is a registered collection table.
func KnownTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}
