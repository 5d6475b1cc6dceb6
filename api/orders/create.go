package orders

import (
	"net/http"
	"promo_store_server/api/middleware"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

// Checkout turns the caller's cart into an order. Validation and empty-cart
// failures happen before anything is written.
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		handling.HandleError(err, "", orm.logger, w)
		return
	}

	session := middleware.SessionFromContext(r.Context())

	order, err := orm.orderService.Checkout(r.Context(), session.CartToken, body)
	if err != nil {
		handling.HandleError(err, "Product in cart no longer exists", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order placed"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
