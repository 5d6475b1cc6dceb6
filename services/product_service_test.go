package services_test

import (
	"context"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	f.createProduct(t, "Polo Shirt", "clothing", 12000)
	f.createProduct(t, "Shirt Gift Box", "gifts", 3000)
	f.createProduct(t, "6-Panel Cap", "headwear", 4500)

	all, err := f.products.ListProducts(ctx, structs.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Classic T-Shirt", all[0].Name)

	clothing, err := f.products.ListProducts(ctx, structs.ProductFilter{Category: "clothing"})
	require.NoError(t, err)
	assert.Len(t, clothing, 2)

	shirts, err := f.products.ListProducts(ctx, structs.ProductFilter{Search: "shirt"})
	require.NoError(t, err)
	assert.Len(t, shirts, 3)

	both, err := f.products.ListProducts(ctx, structs.ProductFilter{Category: "gifts", Search: "SHIRT"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Shirt Gift Box", both[0].Name)

	none, err := f.products.ListProducts(ctx, structs.ProductFilter{Category: "headwear", Search: "shirt"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateProductDefaults(t *testing.T) {
	f := newFixture(t)

	product := f.createProduct(t, "Safety Vest", "workwear", 6500)
	assert.NotZero(t, product.ID)
	assert.Equal(t, tables.DefaultStockStatus, product.StockStatus)
	assert.Equal(t, []string{}, product.BrandingOptions)

	stored, err := f.products.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Safety Vest", stored.Name)
	assert.Equal(t, int64(6500), stored.Price)
	assert.Empty(t, stored.BrandingOptions)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.CreateProduct(context.Background(), &structs.ProductRequest{
		Name:     "No price",
		Category: "gifts",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, lib.ErrValidation)

	negative := int64(-1)
	_, err = f.products.CreateProduct(context.Background(), &structs.ProductRequest{
		Name:        "Negative",
		Description: "d",
		Category:    "gifts",
		Price:       &negative,
		ImageURL:    "/x.jpg",
	})
	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestGetProductNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product := f.createProduct(t, "Corporate Notebook", "gifts", 15000)

	updated, err := f.products.UpdateProduct(ctx, product.ID, &structs.ProductPatch{
		Price:           ptr(int64(14000)),
		BrandingOptions: &[]string{"Debossing"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(14000), updated.Price)
	assert.Equal(t, "Corporate Notebook", updated.Name)
	assert.Equal(t, []string{"Debossing"}, updated.BrandingOptions)
	assert.False(t, updated.UpdatedAt.Before(product.UpdatedAt))

	stored, err := f.products.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14000), stored.Price)
	assert.Equal(t, "gifts", stored.Category)
	assert.Equal(t, []string{"Debossing"}, stored.BrandingOptions)
}

func TestUpdateProductNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.UpdateProduct(context.Background(), 42, &structs.ProductPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product := f.createProduct(t, "6-Panel Cap", "headwear", 4500)

	deleted, err := f.products.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.products.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.products.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.categories.CreateCategory(ctx, &structs.CategoryRequest{
		Name:     "Gifts",
		Slug:     "gifts",
		ImageURL: "/images/gifts.jpg",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = f.categories.CreateCategory(ctx, &structs.CategoryRequest{
		Name:     "More Gifts",
		Slug:     "gifts",
		ImageURL: "/images/gifts.jpg",
	})
	assert.ErrorIs(t, err, lib.ErrConflict)

	_, err = f.categories.CreateCategory(ctx, &structs.CategoryRequest{
		Name:     "Bad",
		Slug:     "Not A Slug",
		ImageURL: "/images/bad.jpg",
	})
	assert.ErrorIs(t, err, lib.ErrValidation)

	found, err := f.categories.GetCategoryBySlug(ctx, "gifts")
	require.NoError(t, err)
	assert.Equal(t, "Gifts", found.Name)

	_, err = f.categories.GetCategoryBySlug(ctx, "missing")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	list, err := f.categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSeedCatalogRunsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.categories.SeedCatalog(ctx))
	require.NoError(t, f.categories.SeedCatalog(ctx))

	products, err := f.products.ListProducts(ctx, structs.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 4)

	categories, err := f.categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)

	gifts, err := f.products.ListProducts(ctx, structs.ProductFilter{Category: "gifts"})
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, "Corporate Notebook", gifts[0].Name)
	assert.NotEmpty(t, gifts[0].BrandingOptions)
}
