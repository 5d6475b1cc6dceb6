package cart

import (
	"promo_store_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger         *gecho.Logger
	cartService    *services.CartService
	sessionService *services.SessionService
}

func NewCartRoutesManager(logger *gecho.Logger, cartService *services.CartService, sessionService *services.SessionService) *CartRoutesManager {
	return &CartRoutesManager{
		logger:         logger,
		cartService:    cartService,
		sessionService: sessionService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", crm.GetCart)
		r.Post("/", crm.AddItem)
		r.Patch("/{id}", crm.UpdateItem)
		r.Delete("/{id}", crm.RemoveItem)
	})
}
