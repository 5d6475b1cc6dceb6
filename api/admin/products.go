package admin

import (
	"net/http"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

const msgProductNotFound = "Product not found"

func (ar *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := ar.productService.ListProducts(r.Context(), handling.ParseProductFilter(r))
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	product, err := ar.productService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	ar.logger.Info("Product created", gecho.Field("product_id", product.ID))

	gecho.Success(w,
		gecho.WithMessage("Product created successfully"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateProduct applies a partial update; absent fields keep their value.
func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductPatch](r)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	product, err := ar.productService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, msgProductNotFound, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated successfully"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	deleted, err := ar.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}
	if !deleted {
		gecho.NotFound(w, gecho.WithMessage(msgProductNotFound), gecho.Send())
		return
	}

	ar.logger.Info("Product deleted", gecho.Field("product_id", id))

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.WithData(map[string]bool{"deleted": true}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	category, err := ar.categoryService.CreateCategory(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created successfully"),
		gecho.WithData(category),
		gecho.Send(),
	)
}
