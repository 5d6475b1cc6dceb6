package database

import (
	"context"
	"fmt"
	"promo_store_server/structs/tables"

	"github.com/uptrace/bun"
)

type tableSpec struct {
	model       any
	foreignKeys []string
}

// Tables in dependency order.
var schema = []tableSpec{
	{model: (*tables.Category)(nil)},
	{model: (*tables.Product)(nil)},
	{
		model:       (*tables.CartItem)(nil),
		foreignKeys: []string{`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`},
	},
	{model: (*tables.Order)(nil)},
	{
		model:       (*tables.OrderItem)(nil),
		foreignKeys: []string{`("order_id") REFERENCES "orders" ("id") ON DELETE CASCADE`},
	},
	{model: (*tables.Admin)(nil)},
	{model: (*tables.SiteSettings)(nil)},
}

// Migrate creates every table that does not exist yet.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, spec := range schema {
		query := db.NewCreateTable().Model(spec.model).IfNotExists()
		for _, fk := range spec.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", spec.model, err)
		}
	}

	indexes := []*bun.CreateIndexQuery{
		db.NewCreateIndex().Model((*tables.Product)(nil)).Index("products_category_idx").Column("category").IfNotExists(),
		db.NewCreateIndex().Model((*tables.Order)(nil)).Index("orders_created_at_idx").Column("created_at").IfNotExists(),
		db.NewCreateIndex().Model((*tables.OrderItem)(nil)).Index("order_items_order_id_idx").Column("order_id").IfNotExists(),
	}
	for _, idx := range indexes {
		if _, err := idx.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
