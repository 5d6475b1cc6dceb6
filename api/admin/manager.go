package admin

import (
	"promo_store_server/api/middleware"
	"promo_store_server/services"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger          *gecho.Logger
	productService  *services.ProductService
	categoryService *services.CategoryService
	orderService    *services.OrderService
	settingsService *services.SettingsService
	mw              *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	categoryService *services.CategoryService,
	orderService *services.OrderService,
	settingsService *services.SettingsService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:          logger,
		productService:  productService,
		categoryService: categoryService,
		orderService:    orderService,
		settingsService: settingsService,
		mw:              mw,
	}
}

// RegisterRoutes mounts the gated routes on the /admin router.
func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(ar.mw.RequireRole(structs.RoleAdmin))

		r.Get("/products", ar.ListProducts)
		r.Post("/products", ar.CreateProduct)
		r.Patch("/products/{id}", ar.UpdateProduct)
		r.Delete("/products/{id}", ar.DeleteProduct)

		r.Post("/categories", ar.CreateCategory)

		r.Get("/orders", ar.ListOrders)
		r.Get("/orders/{id}", ar.GetOrderDetails)

		r.Patch("/site-settings", ar.UpdateSettings)
	})
}
