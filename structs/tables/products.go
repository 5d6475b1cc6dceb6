package tables

import (
	"time"

	"github.com/uptrace/bun"
)

const DefaultStockStatus = "In Stock"

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Description     string    `bun:"description,notnull" json:"description"`
	Category        string    `bun:"category,notnull" json:"category"`
	Price           int64     `bun:"price,notnull" json:"price"` // stored in cents
	ImageURL        string    `bun:"image_url,notnull" json:"imageUrl"`
	StockStatus     string    `bun:"stock_status,notnull,default:'In Stock'" json:"stockStatus"`
	BrandingOptions []string  `bun:"branding_options,type:jsonb,notnull" json:"brandingOptions"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	ImageURL  string    `bun:"image_url,notnull" json:"imageUrl"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
