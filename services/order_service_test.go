package services_test

import (
	"context"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckout() *structs.CheckoutRequest {
	return &structs.CheckoutRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+44 20 7946 0000",
		ShippingAddress: "12 Analytical Row\nLondon",
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	hat := f.createProduct(t, "6-Panel Cap", "headwear", 4500)

	_, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "cart-a", hat.ID, 1)
	require.NoError(t, err)

	order, err := f.orders.Checkout(ctx, "cart-a", validCheckout())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, tables.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*8500+4500), order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Classic T-Shirt", order.Items[0].ProductName)
	assert.Equal(t, int64(8500), order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	assert.Empty(t, items)

	f.orders.Wait()
	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, order.ID, sent[0].ID)
	assert.Equal(t, "ada@example.com", sent[0].CustomerEmail)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.Checkout(ctx, "cart-a", validCheckout())
	assert.ErrorIs(t, err, lib.ErrEmptyCart)

	_, err = f.orders.Checkout(ctx, "", validCheckout())
	assert.ErrorIs(t, err, lib.ErrEmptyCart)

	count, err := database.Query[tables.Order](f.db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutValidationLeavesCartAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	_, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 1)
	require.NoError(t, err)

	cases := map[string]func(*structs.CheckoutRequest){
		"blank name":     func(r *structs.CheckoutRequest) { r.CustomerName = "   " },
		"bad email":      func(r *structs.CheckoutRequest) { r.CustomerEmail = "not-an-email" },
		"missing phone":  func(r *structs.CheckoutRequest) { r.CustomerPhone = "" },
		"missing street": func(r *structs.CheckoutRequest) { r.ShippingAddress = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCheckout()
			mutate(req)

			_, err := f.orders.Checkout(ctx, "cart-a", req)
			assert.ErrorIs(t, err, lib.ErrValidation)
		})
	}

	items, err := f.cart.GetItems(ctx, "cart-a")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	count, err := database.Query[tables.Order](f.db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrderPricesAreSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	notebook := f.createProduct(t, "Corporate Notebook", "gifts", 15000)
	_, err := f.cart.AddItem(ctx, "cart-a", notebook.ID, 1)
	require.NoError(t, err)

	order, err := f.orders.Checkout(ctx, "cart-a", validCheckout())
	require.NoError(t, err)

	_, err = f.products.UpdateProduct(ctx, notebook.ID, &structs.ProductPatch{
		Name:  ptr("Renamed Notebook"),
		Price: ptr(int64(99999)),
	})
	require.NoError(t, err)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), stored.Total)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(15000), stored.Items[0].Price)
	assert.Equal(t, "Corporate Notebook", stored.Items[0].ProductName)
}

func TestListOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)

	var ids []int64
	for _, token := range []string{"cart-a", "cart-b", "cart-c"} {
		_, err := f.cart.AddItem(ctx, token, tee.ID, 1)
		require.NoError(t, err)
		order, err := f.orders.Checkout(ctx, token, validCheckout())
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	page, err := f.orders.ListOrders(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, ids[2], page.Data[0].ID)
	assert.Equal(t, ids[1], page.Data[1].ID)
	assert.Len(t, page.Data[0].Items, 1)

	last, err := f.orders.ListOrders(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, ids[0], last.Data[0].ID)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.GetOrder(context.Background(), 77)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCheckoutEncryptsContactFields(t *testing.T) {
	key := "0123456789abcdef0123456789abcdef"
	f := newFixtureWithKey(t, key)
	ctx := context.Background()

	tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
	_, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 1)
	require.NoError(t, err)

	order, err := f.orders.Checkout(ctx, "cart-a", validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", order.CustomerEmail)

	raw, err := database.FindByID[tables.Order](f.db, ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.NotEqual(t, "ada@example.com", raw.CustomerEmail)
	assert.Equal(t, "Ada Lovelace", raw.CustomerName)

	plain, err := lib.Decrypt(raw.CustomerEmail, key)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", plain)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.CustomerEmail)
	assert.Equal(t, "12 Analytical Row\nLondon", stored.ShippingAddress)
}

func TestCheckoutRollsBackWhenALaterStepFails(t *testing.T) {
	cases := map[string]struct {
		trigger string
		wantErr error
	}{
		"order item insert fails": {
			trigger: `CREATE TRIGGER reject_order_items BEFORE INSERT ON order_items
				BEGIN SELECT RAISE(ABORT, 'order items unavailable'); END`,
		},
		"cart lines vanish": {
			trigger: `CREATE TRIGGER keep_cart_items BEFORE DELETE ON cart_items
				BEGIN SELECT RAISE(IGNORE); END`,
			wantErr: lib.ErrCartChanged,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			tee := f.createProduct(t, "Classic T-Shirt", "clothing", 8500)
			hat := f.createProduct(t, "6-Panel Cap", "headwear", 4500)
			_, err := f.cart.AddItem(ctx, "cart-a", tee.ID, 2)
			require.NoError(t, err)
			_, err = f.cart.AddItem(ctx, "cart-a", hat.ID, 1)
			require.NoError(t, err)

			_, err = f.db.ExecContext(ctx, tc.trigger)
			require.NoError(t, err)

			_, err = f.orders.Checkout(ctx, "cart-a", validCheckout())
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}

			orders, err := database.Query[tables.Order](f.db).Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, orders)

			orderItems, err := database.Query[tables.OrderItem](f.db).Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, orderItems)

			items, err := f.cart.GetItems(ctx, "cart-a")
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, 2, items[0].Quantity)
			assert.Equal(t, 1, items[1].Quantity)

			f.orders.Wait()
			assert.Empty(t, f.notifier.sent())
		})
	}
}
