// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/l10n"
	"github.com/olegiv/groplan-go/internal/model"
	"github.com/olegiv/groplan-go/internal/store"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func newBrandGateway(t *testing.T) (*store.Gateway[model.Brand, *model.Brand], func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	return store.MustGateway[model.Brand](db, store.TableBrands), cleanup
}

func testBrand(slug string) *model.Brand {
	b := model.DefaultBrand()
	b.Name = l10n.NewFrom("GreenGro", "GreenGro")
	b.Slug = slug
	b.Color = "#10b981"
	return &b
}

func TestNewGatewayRejectsUnknownTable(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	_, err := store.NewGateway[model.Brand](db, "nonexistent")
	require.ErrorIs(t, err, store.ErrUnknownTable)
}

func TestCreateAssignsIdentity(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	first := testBrand("greengro")
	require.NoError(t, g.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.EqualValues(t, 1, first.Version)
	assert.False(t, first.CreatedAt.IsZero())

	second := testBrand("greengro-2")
	require.NoError(t, g.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID, "ids must be unique across the collection")
}

func TestGetByIDRoundTrip(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	brand.Name = l10n.NewFrom("GreenGro", "Yeşil Büyüme")
	require.NoError(t, g.Create(ctx, brand))

	got, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "GreenGro", got.Name[l10n.LangEN])
	assert.Equal(t, "Yeşil Büyüme", got.Name[l10n.LangTR])
	assert.Equal(t, "#10b981", got.Color)
	assert.True(t, got.IsActive)
}

func TestGetByIDNotFound(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()

	_, err := g.GetByID(context.Background(), "no-such-id")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdatePreservesUntouchedLanguage(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	brand.Name = l10n.NewFrom("GreenGro", "Yeşil Büyüme")
	require.NoError(t, g.Create(ctx, brand))

	// Edit only the English slot.
	brand.Name = brand.Name.Set(l10n.LangEN, "GreenGro Ltd")
	require.NoError(t, g.Update(ctx, brand))

	got, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "GreenGro Ltd", got.Name[l10n.LangEN])
	assert.Equal(t, "Yeşil Büyüme", got.Name[l10n.LangTR], "untouched language changed on save/reload")
}

func TestUpdateStaleVersion(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	require.NoError(t, g.Create(ctx, brand))

	// Two operators load the same record.
	first, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	second, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)

	first.Color = "#ff0000"
	require.NoError(t, g.Update(ctx, first))

	second.Color = "#0000ff"
	err = g.Update(ctx, second)
	require.ErrorIs(t, err, store.ErrStale, "second write must not silently win")

	got, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", got.Color)
}

func TestUpdateNotFound(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()

	brand := testBrand("greengro")
	brand.ID = "no-such-id"
	brand.Version = 1
	err := g.Update(context.Background(), brand)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestModifyMergesPartialEdit(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	brand.Name = l10n.NewFrom("GreenGro", "Yeşil Büyüme")
	require.NoError(t, g.Create(ctx, brand))

	// A partial edit touches only the color; all other fields must survive.
	updated, err := g.Modify(ctx, brand.ID, func(b *model.Brand) error {
		b.Color = "#334455"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "#334455", updated.Color)
	assert.Equal(t, "greengro", updated.Slug)
	assert.Equal(t, "Yeşil Büyüme", updated.Name[l10n.LangTR])
	assert.EqualValues(t, 2, updated.Version)
}

func TestModifyCallbackErrorAborts(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	require.NoError(t, g.Create(ctx, brand))

	wantErr := errors.New("validation failed")
	_, err := g.Modify(ctx, brand.ID, func(b *model.Brand) error {
		b.Color = "#000000"
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	got, err := g.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "#10b981", got.Color, "aborted modify must not persist")
}

func TestDelete(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	require.NoError(t, g.Create(ctx, brand))

	require.NoError(t, g.Delete(ctx, brand.ID))
	_, err := g.GetByID(ctx, brand.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, g.Delete(ctx, brand.ID), store.ErrNotFound)
}

func TestListDefaultOrderNewestFirst(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	for _, slug := range []string{"first", "second", "third"} {
		require.NoError(t, g.Create(ctx, testBrand(slug)))
	}

	items, total, err := g.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i-1].CreatedAt.Before(items[i].CreatedAt),
			"default order must be newest first")
	}
}

func TestListOrderByJSONField(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	for _, slug := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, g.Create(ctx, testBrand(slug)))
	}

	items, _, err := g.List(ctx, store.ListOptions{OrderBy: "slug"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "alpha", items[0].Slug)
	assert.Equal(t, "bravo", items[1].Slug)
	assert.Equal(t, "charlie", items[2].Slug)
}

func TestListLimitAndTotal(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c", "d"} {
		require.NoError(t, g.Create(ctx, testBrand(slug)))
	}

	items, total, err := g.List(ctx, store.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 4, total, "total must count the whole collection")
}

func TestListRejectsInvalidOrderColumn(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()

	_, _, err := g.List(context.Background(), store.ListOptions{OrderBy: "slug; DROP TABLE brands"})
	require.Error(t, err)
}

func TestFieldEquals(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	require.NoError(t, g.Create(ctx, brand))

	count, err := g.FieldEquals(ctx, "slug", "greengro", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Excluding the record itself (the update-mode uniqueness check).
	count, err = g.FieldEquals(ctx, "slug", "greengro", brand.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestFindByField(t *testing.T) {
	g, cleanup := newBrandGateway(t)
	defer cleanup()
	ctx := context.Background()

	brand := testBrand("greengro")
	require.NoError(t, g.Create(ctx, brand))

	got, err := g.FindByField(ctx, "slug", "greengro")
	require.NoError(t, err)
	assert.Equal(t, brand.ID, got.ID)

	_, err = g.FindByField(ctx, "slug", "absent")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductSpecsRoundTrip(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	g := store.MustGateway[model.Product](db, store.TableProducts)

	product := model.DefaultProduct()
	product.Name = l10n.NewFrom("Helios 600W", "")
	product.SKU = "GG-LED-600"
	product.Slug = "helios-600w"
	product.Specs = model.SpecsFromPairs([]model.SpecPair{
		{Key: "watts", Value: "600"},
		{Key: "dimmable", Value: "true"},
		{Key: "mount", Value: "hanging"},
	})
	require.NoError(t, g.Create(ctx, &product))

	got, err := g.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(600), got.Specs["watts"], "numeric spec must round-trip as a number")
	assert.Equal(t, true, got.Specs["dimmable"])
	assert.Equal(t, "hanging", got.Specs["mount"])
}
