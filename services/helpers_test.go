package services_test

import (
	"context"
	"promo_store_server/database"
	"promo_store_server/database/testdb"
	"promo_store_server/services"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"sync"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db         *database.DB
	logger     *gecho.Logger
	products   *services.ProductService
	categories *services.CategoryService
	cart       *services.CartService
	orders     *services.OrderService
	notifier   *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithKey(t, "")
}

func newFixtureWithKey(t *testing.T, encryptionKey string) *fixture {
	t.Helper()

	db := testdb.New(t)
	logger := gecho.NewDefaultLogger()
	products := services.NewProductService(logger, db)
	cart := services.NewCartService(logger, db, products)
	notifier := &recordingNotifier{}

	return &fixture{
		db:         db,
		logger:     logger,
		products:   products,
		categories: services.NewCategoryService(logger, db),
		cart:       cart,
		orders:     services.NewOrderService(logger, db, cart, notifier, encryptionKey),
		notifier:   notifier,
	}
}

func (f *fixture) createProduct(t *testing.T, name, category string, price int64) *tables.Product {
	t.Helper()

	product, err := f.products.CreateProduct(context.Background(), &structs.ProductRequest{
		Name:        name,
		Description: name + " description",
		Category:    category,
		Price:       &price,
		ImageURL:    "/images/" + category + ".jpg",
	})
	require.NoError(t, err)
	return product
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []tables.Order
}

func (n *recordingNotifier) SendOrderConfirmationEmail(_ context.Context, order *tables.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, *order)
	return nil
}

func (n *recordingNotifier) sent() []tables.Order {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]tables.Order(nil), n.orders...)
}

func ptr[T any](v T) *T {
	return &v
}
