package api

import (
	"promo_store_server/api/admin"
	"promo_store_server/api/auth"
	"promo_store_server/api/cart"
	"promo_store_server/api/health"
	"promo_store_server/api/middleware"
	"promo_store_server/api/orders"
	"promo_store_server/api/products"
	"promo_store_server/api/settings"
	"promo_store_server/services"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	cfg            *structs.Config
	mw             *middleware.Middleware
	productRoutes  *products.ProductRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	orderRoutes    *orders.OrderRoutesManager
	cartRoutes     *cart.CartRoutesManager
	settingsRoutes *settings.SettingsRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, svc *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		cfg:            cfg,
		mw:             mw,
		productRoutes:  products.NewProductRoutesManager(logger, svc.ProductService, svc.CategoryService),
		healthRoutes:   health.NewHealthRoutesManager(svc.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, svc.AuthService, svc.SessionService, mw),
		adminRoutes:    admin.NewAdminRoutesManager(logger, svc.ProductService, svc.CategoryService, svc.OrderService, svc.SettingsService, mw),
		orderRoutes:    orders.NewOrderRoutesManager(logger, svc.OrderService),
		cartRoutes:     cart.NewCartRoutesManager(logger, svc.CartService, svc.SessionService),
		settingsRoutes: settings.NewSettingsRoutesManager(logger, svc.SettingsService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(rm.mw.RateLimitMiddleware())
		if rm.cfg.Security.EnableCSRF {
			r.Use(rm.mw.CSRFMiddleware())
		}
		r.Use(rm.mw.SessionMiddleware)

		rm.authRoutes.RegisterCSRFRoute(r)
		rm.productRoutes.RegisterRoutes(r)
		rm.cartRoutes.RegisterRoutes(r)
		rm.orderRoutes.RegisterRoutes(r)
		rm.settingsRoutes.RegisterRoutes(r)

		r.Route("/admin", func(r chi.Router) {
			rm.authRoutes.RegisterRoutes(r)
			rm.adminRoutes.RegisterRoutes(r)
		})
	})
}
