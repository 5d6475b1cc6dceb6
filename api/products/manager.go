package products

import (
	"promo_store_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger          *gecho.Logger
	productService  *services.ProductService
	categoryService *services.CategoryService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	categoryService *services.CategoryService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:          logger,
		productService:  productService,
		categoryService: categoryService,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchProducts)
	r.Get("/products/{id}", prm.FetchProductByID)
	r.Get("/categories", prm.FetchCategories)
	r.Get("/categories/{slug}", prm.FetchCategoryBySlug)
}
