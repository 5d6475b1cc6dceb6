package tables

import (
	"time"

	"github.com/uptrace/bun"
)

// CartItem is one line of a session cart. SessionID holds the cart token,
// not an authenticated identity.
type CartItem struct {
	bun.BaseModel `bun:"table:cart_items,alias:ci"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	SessionID string    `bun:"session_id,notnull,unique:cart_items_session_product" json:"-"`
	ProductID int64     `bun:"product_id,notnull,unique:cart_items_session_product" json:"productId"`
	Quantity  int       `bun:"quantity,notnull,default:1" json:"quantity"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}

// LineTotal uses the live product price.
func (ci *CartItem) LineTotal() int64 {
	if ci.Product == nil {
		return 0
	}
	return ci.Product.Price * int64(ci.Quantity)
}
