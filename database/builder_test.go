package database_test

import (
	"context"
	"errors"
	"promo_store_server/database"
	"promo_store_server/database/testdb"
	"promo_store_server/structs/tables"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func seedProducts(t *testing.T, db bun.IDB, products ...tables.Product) []tables.Product {
	t.Helper()
	now := time.Now()
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		if products[i].BrandingOptions == nil {
			products[i].BrandingOptions = []string{}
		}
		if products[i].StockStatus == "" {
			products[i].StockStatus = tables.DefaultStockStatus
		}
	}
	for i := range products {
		_, err := database.Create(db, context.Background(), &products[i])
		require.NoError(t, err)
	}
	return products
}

func TestQueryBuilderFilters(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	seedProducts(t, db,
		tables.Product{Name: "Classic T-Shirt", Category: "clothing", Price: 8500},
		tables.Product{Name: "Polo Shirt", Category: "clothing", Price: 12000},
		tables.Product{Name: "Shirt Box", Category: "gifts", Price: 3000},
		tables.Product{Name: "100%_Cotton Bag", Category: "gifts", Price: 2000},
	)

	shirts, err := database.Query[tables.Product](db).
		Where("category", "clothing").
		WhereContains("name", "SHIRT").
		OrderBy("id", database.ASC).
		All(ctx)
	require.NoError(t, err)
	require.Len(t, shirts, 2)
	assert.Equal(t, "Classic T-Shirt", shirts[0].Name)
	assert.Equal(t, "Polo Shirt", shirts[1].Name)

	literal, err := database.Query[tables.Product](db).WhereContains("name", "0%_c").All(ctx)
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100%_Cotton Bag", literal[0].Name)

	none, err := database.Query[tables.Product](db).WhereContains("name", "_").Where("category", "clothing").All(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	expensive, err := database.Query[tables.Product](db).WhereOp("price", ">", 5000).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, expensive)
}

func TestFirstReturnsNilWhenMissing(t *testing.T) {
	db := testdb.New(t)

	p, err := database.FindByID[tables.Product](db, context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateAndDelete(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	products := seedProducts(t, db, tables.Product{Name: "Cap", Category: "headwear", Price: 4500})
	id := products[0].ID
	require.NotZero(t, id)

	n, err := database.Query[tables.Product](db).Where("id", id).Update(ctx, map[string]any{"price": 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := database.FindByID[tables.Product](db, ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), p.Price)

	n, err = database.DeleteByID[tables.Product](db, ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = database.DeleteByID[tables.Product](db, ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteRequiresConditions(t *testing.T) {
	db := testdb.New(t)

	_, err := database.Query[tables.Product](db).Delete(context.Background())
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	var products []tables.Product
	for i := 0; i < 25; i++ {
		products = append(products, tables.Product{Name: "Item", Category: "gifts", Price: int64(i)})
	}
	seedProducts(t, db, products...)

	page, err := database.Paginate(database.Query[tables.Product](db).OrderBy("id", database.ASC), ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, database.Pagination{Page: 3, PageSize: 10, Total: 25, TotalPages: 3}, page.Pagination)

	page, err = database.Paginate(database.Query[tables.Product](db), ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, database.MaxPageSize, page.Pagination.PageSize)
}

func TestTransactionRollsBack(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		seedProducts(t, tx, tables.Product{Name: "Vest", Category: "workwear", Price: 6500})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := database.Query[tables.Product](db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, database.EscapeLike(`50%_off\`))
}
