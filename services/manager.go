package services

import (
	"promo_store_server/database"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

type ServiceManager struct {
	AuthService     *AuthService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	ProductService  *ProductService
	CategoryService *CategoryService
	CartService     *CartService
	OrderService    *OrderService
	SessionService  *SessionService
	SettingsService *SettingsService
}

// NewServiceManager wires every service. redisClient may be nil, in which
// case sessions are kept in memory and rate limiting is unavailable.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, redisClient *redis.Client) *ServiceManager {
	var cacheService *CacheService
	if redisClient != nil {
		cacheService = NewCacheService(logger, redisClient)
	}

	var sessionStore SessionStore
	if cfg.Session.Store == SessionStoreRedis && cacheService != nil {
		sessionStore = NewRedisSessionStore(cacheService)
	} else {
		sessionStore = NewMemorySessionStore()
	}

	authService := NewAuthService(logger, db, cfg.Auth)
	emailService := NewEmailService(logger, cfg.Email)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db)
	categoryService := NewCategoryService(logger, db)
	cartService := NewCartService(logger, db, productService)
	orderService := NewOrderService(logger, db, cartService, emailService, cfg.Security.EncryptionKey)
	sessionService := NewSessionService(logger, sessionStore, cfg.Session)
	settingsService := NewSettingsService(logger, db)

	return &ServiceManager{
		AuthService:     authService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		ProductService:  productService,
		CategoryService: categoryService,
		CartService:     cartService,
		OrderService:    orderService,
		SessionService:  sessionService,
		SettingsService: settingsService,
	}
}
