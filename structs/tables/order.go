package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	SessionID string `bun:"session_id,notnull" json:"-"`

	// Customer Data
	CustomerName    string `bun:"customer_name,notnull" json:"customerName"`
	CustomerEmail   string `bun:"customer_email,notnull" json:"customerEmail"`
	CustomerPhone   string `bun:"customer_phone,notnull" json:"customerPhone"`
	ShippingAddress string `bun:"shipping_address,notnull" json:"shippingAddress"`

	// Order Data
	Total     int64       `bun:"total,notnull" json:"total"` // stored in cents
	Status    OrderStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID        int64 `bun:"id,pk,autoincrement" json:"id"`
	OrderID   int64 `bun:"order_id,notnull" json:"orderId"`
	ProductID int64 `bun:"product_id,notnull" json:"productId"`
	Quantity  int   `bun:"quantity,notnull" json:"quantity"`

	// Snapshot of the product at time of order
	Price       int64  `bun:"price,notnull" json:"price"`
	ProductName string `bun:"product_name,notnull" json:"productName"`
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)
