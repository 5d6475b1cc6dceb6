package auth

import (
	"promo_store_server/api/middleware"
	"promo_store_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger         *gecho.Logger
	authService    *services.AuthService
	sessionService *services.SessionService
	mw             *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	sessionService *services.SessionService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:         logger,
		authService:    authService,
		sessionService: sessionService,
		mw:             mw,
	}
}

// RegisterRoutes mounts the login endpoints on the /admin router.
func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/login", arm.HandleLogin)
	r.Post("/logout", arm.HandleLogout)
	r.Get("/status", arm.HandleStatus)
}

func (arm *AuthRoutesManager) RegisterCSRFRoute(r chi.Router) {
	r.Get("/csrf", arm.HandleCSRF)
}
