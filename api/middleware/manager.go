package middleware

import (
	"promo_store_server/services"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg      *structs.Config
	logger   *gecho.Logger
	sessions *services.SessionService
	admins   *services.AuthService
	cache    *services.CacheService
}

// NewMiddleware builds the shared middleware. cache may be nil, which turns
// rate limiting off.
func NewMiddleware(
	cfg *structs.Config,
	logger *gecho.Logger,
	sessions *services.SessionService,
	admins *services.AuthService,
	cache *services.CacheService,
) *Middleware {
	return &Middleware{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		admins:   admins,
		cache:    cache,
	}
}
