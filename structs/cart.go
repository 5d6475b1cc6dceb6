package structs

import "promo_store_server/structs/tables"

type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	// Missing or zero means one unit.
	Quantity  *int  `json:"quantity" validate:"omitempty,gte=0"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CartSummary struct {
	Items      []tables.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
}

type CartItemUpdate struct {
	Item    *tables.CartItem `json:"item,omitempty"`
	Removed bool             `json:"removed"`
}
