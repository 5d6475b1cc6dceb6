package admin

import (
	"net/http"
	"promo_store_server/handling"

	"github.com/MonkyMars/gecho"
)

// ListOrders returns orders newest first, paginated by ?page= and ?page_size=.
func (ar *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := handling.ParsePagination(r)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	result, err := ar.orderService.ListOrders(r.Context(), page, pageSize)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	order, err := ar.orderService.GetOrder(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Order not found", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}
