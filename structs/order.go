package structs

type CheckoutRequest struct {
	CustomerName    string `json:"customerName" validate:"required,notblank,max=200"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string `json:"customerPhone" validate:"required,notblank,max=50"`
	ShippingAddress string `json:"shippingAddress" validate:"required,notblank,max=1000"`
}
