package cart

import (
	"net/http"
	"promo_store_server/api/middleware"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

const msgItemNotFound = "Cart item not found"

func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	items, err := crm.cartService.GetItems(r.Context(), session.CartToken)
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(crm.cartService.Summary(items)),
		gecho.Send(),
	)
}

// AddItem adds to the session cart. Older sessions get their cart token backfilled here.
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.AddToCartRequest](r)
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	quantity := 1
	if body.Quantity != nil && *body.Quantity > 0 {
		quantity = *body.Quantity
	}

	session, err := crm.sessionService.EnsureCartToken(ctx, middleware.SessionFromContext(ctx))
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	item, err := crm.cartService.AddItem(ctx, session.CartToken, body.ProductID, quantity)
	if err != nil {
		handling.HandleError(err, "Product not found", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item added to cart"),
		gecho.WithData(item),
		gecho.Send(),
	)
}

// UpdateItem sets the quantity of a line. Quantities below one remove it.
func (crm *CartRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateCartItemRequest](r)
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	session := middleware.SessionFromContext(ctx)
	if session.CartToken == "" {
		handling.HandleError(lib.ErrNotFound, msgItemNotFound, crm.logger, w)
		return
	}

	item, removed, err := crm.cartService.UpdateQuantity(ctx, session.CartToken, id, *body.Quantity)
	if err != nil {
		handling.HandleError(err, msgItemNotFound, crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.CartItemUpdate{Item: item, Removed: removed}),
		gecho.Send(),
	)
}

// RemoveItem succeeds whether or not the line exists.
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", crm.logger, w)
		return
	}

	session := middleware.SessionFromContext(ctx)
	if session.CartToken != "" {
		if err := crm.cartService.RemoveItem(ctx, session.CartToken, id); err != nil {
			handling.HandleError(err, "", crm.logger, w)
			return
		}
	}

	gecho.Success(w,
		gecho.WithMessage("Item removed from cart"),
		gecho.Send(),
	)
}
