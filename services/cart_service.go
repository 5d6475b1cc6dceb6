package services

import (
	"context"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// CartService stores cart lines keyed by the session cart token. Every item
// operation is scoped by that token.
type CartService struct {
	logger   *gecho.Logger
	db       *database.DB
	products *ProductService
}

func NewCartService(logger *gecho.Logger, db *database.DB, products *ProductService) *CartService {
	return &CartService{
		logger:   logger,
		db:       db,
		products: products,
	}
}

// GetItems returns the lines of a cart with their products, oldest first.
func (cs *CartService) GetItems(ctx context.Context, cartToken string) ([]tables.CartItem, error) {
	if cartToken == "" {
		return []tables.CartItem{}, nil
	}
	return cartItems(ctx, cs.db, cartToken)
}

func cartItems(ctx context.Context, db bun.IDB, cartToken string) ([]tables.CartItem, error) {
	items, err := database.Query[tables.CartItem](db).
		Relation("Product").
		WhereRaw("?TableAlias.session_id = ?", cartToken).
		OrderBy("ci.id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	return items, nil
}

// AddItem adds quantity units of a product to the cart. A second add of the
// same product increments the existing line in a single statement.
func (cs *CartService) AddItem(ctx context.Context, cartToken string, productID int64, quantity int) (*tables.CartItem, error) {
	if strings.TrimSpace(cartToken) == "" {
		return nil, fmt.Errorf("%w: missing cart token", lib.ErrUnauthorized)
	}
	if quantity < 1 {
		return nil, lib.NewValidationError("quantity", "must be greater than or equal to 1")
	}

	product, err := cs.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &tables.CartItem{
		SessionID: cartToken,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = cs.db.NewInsert().
		Model(item).
		On("CONFLICT (session_id, product_id) DO UPDATE").
		Set("quantity = ?.quantity + EXCLUDED.quantity", cs.conflictTarget()).
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		cs.logger.Error("Failed to add item to cart",
			gecho.Field("error", err),
			gecho.Field("product_id", productID),
		)
		return nil, fmt.Errorf("failed to add item to cart: %w", lib.MapDBError(err))
	}

	item.Product = product
	return item, nil
}

// conflictTarget names the existing row inside ON CONFLICT DO UPDATE. bun
// aliases the insert target only on dialects that support it.
func (cs *CartService) conflictTarget() bun.Ident {
	if cs.db.Dialect().Features().Has(feature.InsertTableAlias) {
		return bun.Ident("ci")
	}
	return bun.Ident("cart_items")
}

// UpdateQuantity sets the quantity of one line. Quantities below one remove
// the line and report removed=true.
func (cs *CartService) UpdateQuantity(ctx context.Context, cartToken string, itemID int64, quantity int) (*tables.CartItem, bool, error) {
	if quantity < 1 {
		if err := cs.RemoveItem(ctx, cartToken, itemID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	updated, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemID).
		Where("session_id", cartToken).
		Update(ctx, map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		})
	if err != nil {
		cs.logger.Error("Failed to update cart item", gecho.Field("error", err), gecho.Field("item_id", itemID))
		return nil, false, fmt.Errorf("failed to update cart item: %w", err)
	}
	if updated == 0 {
		return nil, false, fmt.Errorf("cart item %d: %w", itemID, lib.ErrNotFound)
	}

	item, err := database.Query[tables.CartItem](cs.db).
		Relation("Product").
		WhereRaw("?TableAlias.id = ?", itemID).
		First(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload cart item: %w", err)
	}
	if item == nil {
		return nil, false, fmt.Errorf("cart item %d: %w", itemID, lib.ErrNotFound)
	}
	return item, false, nil
}

// RemoveItem deletes one line. Removing a line that does not exist is not an
// error.
func (cs *CartService) RemoveItem(ctx context.Context, cartToken string, itemID int64) error {
	if cartToken == "" {
		return nil
	}

	_, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemID).
		Where("session_id", cartToken).
		Delete(ctx)
	if err != nil {
		cs.logger.Error("Failed to remove cart item", gecho.Field("error", err), gecho.Field("item_id", itemID))
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes every line of a cart through db, which may be a transaction.
func (cs *CartService) Clear(ctx context.Context, db bun.IDB, cartToken string) (int, error) {
	if cartToken == "" {
		return 0, nil
	}
	return database.Query[tables.CartItem](db).Where("session_id", cartToken).Delete(ctx)
}

// Summary totals the lines at their current product prices.
func (cs *CartService) Summary(items []tables.CartItem) structs.CartSummary {
	summary := structs.CartSummary{Items: items}
	if summary.Items == nil {
		summary.Items = []tables.CartItem{}
	}
	for i := range items {
		summary.TotalItems += items[i].Quantity
		summary.TotalPrice += items[i].LineTotal()
	}
	return summary
}
