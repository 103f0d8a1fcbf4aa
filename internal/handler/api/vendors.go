// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/model"
)

// CreateVendorRequest is the request body for creating a vendor.
type CreateVendorRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	IsActive *bool  `json:"is_active"`
}

// UpdateVendorRequest is the request body for updating a vendor.
type UpdateVendorRequest struct {
	Version  *int64  `json:"version,omitempty"`
	Code     *string `json:"code,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Website  *string `json:"website,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListVendors handles GET /api/v1/vendors.
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.vendors, "vendors")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(v model.Vendor) bool { return v.IsActive }),
	)
	listCollection(w, r, items, func(v model.Vendor) []string {
		return []string{v.Code, v.Name, v.Email}
	}, preds...)
}

// GetVendor handles GET /api/v1/vendors/{id}.
func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, ok := requireRecord(w, r, h.vendors, chi.URLParam(r, "id"), "vendor")
	if !ok {
		return
	}
	WriteSuccess(w, vendor, nil)
}

// CreateVendor handles POST /api/v1/vendors.
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req CreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor := model.DefaultVendor()
	vendor.Code = req.Code
	vendor.Name = req.Name
	vendor.Email = req.Email
	vendor.Website = req.Website
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	if errs := vendor.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !checkFieldUnique(w, r, h.vendors, "code", vendor.Code, "") {
		return
	}

	if err := h.vendors.Create(r.Context(), &vendor); err != nil {
		writeStoreError(w, r, err, "vendor")
		return
	}

	h.contentChanged(r.Context(), "vendor created", middleware.GetUserEmail(r),
		map[string]any{"id": vendor.ID, "code": vendor.Code})
	WriteCreated(w, vendor)
}

// UpdateVendor handles PUT /api/v1/vendors/{id}.
func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var req UpdateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if req.Code != nil && !checkFieldUnique(w, r, h.vendors, "code", *req.Code, id) {
		return
	}

	vendor, err := h.vendors.Modify(r.Context(), id, func(v *model.Vendor) error {
		if err := checkVersion(req.Version, v.Version); err != nil {
			return err
		}
		if req.Code != nil {
			v.Code = *req.Code
		}
		if req.Name != nil {
			v.Name = *req.Name
		}
		if req.Email != nil {
			v.Email = *req.Email
		}
		if req.Website != nil {
			v.Website = *req.Website
		}
		if req.IsActive != nil {
			v.IsActive = *req.IsActive
		}
		if errs := v.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "vendor")
		return
	}

	h.contentChanged(r.Context(), "vendor updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, vendor, nil)
}

// DeleteVendor handles DELETE /api/v1/vendors/{id}?confirm=true.
func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.vendors.Delete(r.Context(), id)
	}, "vendor", id)
}

// CreateVendorProductRequest is the request body for creating a vendor offer.
type CreateVendorProductRequest struct {
	VendorID  string  `json:"vendor_id"`
	ProductID string  `json:"product_id"`
	VendorSKU string  `json:"vendor_sku"`
	Price     float64 `json:"price"`
	StockQty  int64   `json:"stock_qty"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateVendorProductRequest is the request body for updating a vendor offer.
type UpdateVendorProductRequest struct {
	Version   *int64   `json:"version,omitempty"`
	VendorID  *string  `json:"vendor_id,omitempty"`
	ProductID *string  `json:"product_id,omitempty"`
	VendorSKU *string  `json:"vendor_sku,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	StockQty  *int64   `json:"stock_qty,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

// ListVendorProducts handles GET /api/v1/vendor-products.
func (h *Handler) ListVendorProducts(w http.ResponseWriter, r *http.Request) {
	items, ok := fetchAll(w, r, h.vendorProducts, "vendor products")
	if !ok {
		return
	}
	preds := collect(
		boolFilter(r.URL.Query(), "active", func(vp model.VendorProduct) bool { return vp.IsActive }),
		stringFilter(r.URL.Query(), "vendor", func(vp model.VendorProduct) string { return vp.VendorID }),
		stringFilter(r.URL.Query(), "product", func(vp model.VendorProduct) string { return vp.ProductID }),
	)
	listCollection(w, r, items, func(vp model.VendorProduct) []string {
		return []string{vp.VendorSKU}
	}, preds...)
}

// GetVendorProduct handles GET /api/v1/vendor-products/{id}.
func (h *Handler) GetVendorProduct(w http.ResponseWriter, r *http.Request) {
	offer, ok := requireRecord(w, r, h.vendorProducts, chi.URLParam(r, "id"), "vendor product")
	if !ok {
		return
	}
	WriteSuccess(w, offer, nil)
}

// checkOfferRefs verifies the vendor and product references exist.
func (h *Handler) checkOfferRefs(w http.ResponseWriter, r *http.Request, vendorID, productID string) bool {
	if vendorID != "" {
		if _, ok := requireRecord(w, r, h.vendors, vendorID, "vendor"); !ok {
			return false
		}
	}
	if productID != "" {
		if _, ok := requireRecord(w, r, h.products, productID, "product"); !ok {
			return false
		}
	}
	return true
}

// CreateVendorProduct handles POST /api/v1/vendor-products.
func (h *Handler) CreateVendorProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateVendorProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	offer := model.DefaultVendorProduct()
	offer.VendorID = req.VendorID
	offer.ProductID = req.ProductID
	offer.VendorSKU = req.VendorSKU
	offer.Price = req.Price
	offer.StockQty = req.StockQty
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if errs := offer.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	if !h.checkOfferRefs(w, r, offer.VendorID, offer.ProductID) {
		return
	}

	if err := h.vendorProducts.Create(r.Context(), &offer); err != nil {
		writeStoreError(w, r, err, "vendor product")
		return
	}

	h.contentChanged(r.Context(), "vendor product created", middleware.GetUserEmail(r),
		map[string]any{"id": offer.ID, "vendor_id": offer.VendorID, "product_id": offer.ProductID})
	WriteCreated(w, offer)
}

// UpdateVendorProduct handles PUT /api/v1/vendor-products/{id}.
func (h *Handler) UpdateVendorProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateVendorProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	vendorID, productID := "", ""
	if req.VendorID != nil {
		vendorID = *req.VendorID
	}
	if req.ProductID != nil {
		productID = *req.ProductID
	}
	if !h.checkOfferRefs(w, r, vendorID, productID) {
		return
	}

	offer, err := h.vendorProducts.Modify(r.Context(), id, func(vp *model.VendorProduct) error {
		if err := checkVersion(req.Version, vp.Version); err != nil {
			return err
		}
		if req.VendorID != nil {
			vp.VendorID = *req.VendorID
		}
		if req.ProductID != nil {
			vp.ProductID = *req.ProductID
		}
		if req.VendorSKU != nil {
			vp.VendorSKU = *req.VendorSKU
		}
		if req.Price != nil {
			vp.Price = *req.Price
		}
		if req.StockQty != nil {
			vp.StockQty = *req.StockQty
		}
		if req.IsActive != nil {
			vp.IsActive = *req.IsActive
		}
		if errs := vp.Validate(); len(errs) > 0 {
			return failValidation(errs)
		}
		return nil
	})
	if err != nil {
		writeModifyError(w, r, err, "vendor product")
		return
	}

	h.contentChanged(r.Context(), "vendor product updated", middleware.GetUserEmail(r),
		map[string]any{"id": id})
	WriteSuccess(w, offer, nil)
}

// DeleteVendorProduct handles DELETE /api/v1/vendor-products/{id}?confirm=true.
func (h *Handler) DeleteVendorProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, func() error {
		return h.vendorProducts.Delete(r.Context(), id)
	}, "vendor product", id)
}
