package services_test

import (
	"context"
	"promo_store_server/lib"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesSameProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)

	first, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Classic T-Shirt", items[0].Product.Name)
}

func TestAddItemConcurrentAddsAreNotLost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hat := f.createProduct(t, "6-Panel Cap", "headwear", 4500)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.cart.AddItem(ctx, "cart-a", hat.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)

	_, err := f.cart.AddItem(ctx, "cart-a", 999, 1)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = f.cart.AddItem(ctx, "cart-a", tee.ID, 0)
	assert.ErrorIs(t, err, lib.ErrValidation)

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)

	item, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 1)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "cart-b", tee.ID, 4)
	require.NoError(t, err)

	_, _, err = f.cart.UpdateQuantity(ctx, "cart-b", item.ID, 10)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	require.NoError(t, f.cart.RemoveItem(ctx, "cart-b", item.ID))

	a, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, 1, a[0].Quantity)

	b, err := f.cart.GetItems(ctx, "cart-b")
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, 4, b[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	vest := f.createProduct(t, "Safety Vest", "workwear", 6500)
	item, err := f.cart.AddItem(ctx, "cart-a", vest.ID, 1)
	require.NoError(t, err)

	updated, removed, err := f.cart.UpdateQuantity(ctx, "cart-a", item.ID, 7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 7, updated.Quantity)
	require.NotNil(t, updated.Product)
	assert.Equal(t, int64(6500*7), updated.LineTotal())

	_, removed, err = f.cart.UpdateQuantity(ctx, "cart-a", item.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, _, err = f.cart.UpdateQuantity(ctx, "cart-a", item.ID, 2)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	item, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.cart.RemoveItem(ctx, "cart-a", item.ID))
	require.NoError(t, f.cart.RemoveItem(ctx, "cart-a", item.ID))
	require.NoError(t, f.cart.RemoveItem(ctx, "cart-a", 12345))
}

func TestCartSummaryUsesLivePrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	hat := f.createProduct(t, "6-Panel Cap", "headwear", 4500)

	_, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "cart-a", hat.ID, 1)
	require.NoError(t, err)

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)

	summary := f.cart.Summary(items)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, int64(2*8500+4500), summary.TotalPrice)

	empty := f.cart.Summary(nil)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalPrice)
}
