package products

import (
	"net/http"
	"promo_store_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchProducts handles GET /products. category and search combine.
func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	filter := handling.ParseProductFilter(r)

	prm.logger.Debug("Fetching products",
		gecho.Field("category", filter.Category),
		gecho.Field("search", filter.Search),
	)

	products, err := prm.productService.ListProducts(r.Context(), filter)
	if err != nil {
		handling.HandleError(err, "", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(r, "id")
	if err != nil {
		handling.HandleError(err, "", prm.logger, w)
		return
	}

	product, err := prm.productService.GetProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Product not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.categoryService.ListCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := prm.categoryService.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "Category not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.Send(),
	)
}
