package config

import (
	"errors"
	"fmt"
	"promo_store_server/structs"
	"sync"
	"time"
)

const DefaultSessionSecret = "default_session_secret"

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load builds a fresh configuration from the environment. Most callers want
// GetConfig; tests use Load to pick up variables set with t.Setenv.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "promo_store_no_env"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			Port:           getEnvAsString("APP_PORT", ":8082"),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			BodyLimit:      int64(getEnvAsInt("SERVER_BODY_LIMIT", 1<<20)),
			CookieDomain:   getEnvAsString("COOKIE_DOMAIN", ""),
			SeedData:       getEnvAsBool("SEED_DATA", false),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-RateLimit-Remaining"}),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:       getEnvAsString("DB_DRIVER", "pgx"),
			DSN:          getEnvAsString("DB_DSN", ""),
			Host:         getEnvAsString("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnvAsString("DB_USER", "postgres"),
			Password:     getEnvAsString("DB_PASSWORD", "password"),
			Name:         getEnvAsString("DB_NAME", "promo_store_db"),
			SSLMode:      getEnvAsString("DB_SSL_MODE", "disable"),
			MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Cache: &structs.CacheConfig{
			Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
			Username:        getEnvAsString("REDIS_USERNAME", ""),
			Password:        getEnvAsString("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
			PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
		},
		Session: &structs.SessionConfig{
			CookieName: getEnvAsString("SESSION_COOKIE_NAME", "promo_session"),
			Secret:     getEnvAsString("SESSION_SECRET", DefaultSessionSecret),
			TTL:        getEnvAsTimeDuration("SESSION_TTL", 7*24*time.Hour),
			Store:      getEnvAsString("SESSION_STORE", "redis"),
		},
		Auth: &structs.AuthConfig{
			AdminUsername: getEnvAsString("ADMIN_USERNAME", ""),
			AdminPassword: getEnvAsString("ADMIN_PASSWORD", ""),
			Argon2Memory:  uint32(getEnvAsInt("ARGON2_MEMORY", 64*1024)),
			Argon2Time:    uint32(getEnvAsInt("ARGON2_TIME", 1)),
			Argon2Threads: uint8(getEnvAsInt("ARGON2_THREADS", 4)),
			Argon2KeyLen:  uint32(getEnvAsInt("ARGON2_KEY_LEN", 32)),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", false),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 300),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			AuthLimit:     getEnvAsInt("RATE_LIMIT_AUTH", 10),
			AuthWindow:    getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", 15*time.Minute),
			AdminLimit:    getEnvAsInt("RATE_LIMIT_ADMIN", 120),
			AdminWindow:   getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			ApiKey:       getEnvAsString("RESEND_API_KEY", ""),
			From:         getEnvAsString("EMAIL_FROM", "Promo Store <orders@example.com>"),
			SupportEmail: getEnvAsString("EMAIL_SUPPORT", ""),
		},
		Security: &structs.SecurityConfig{
			EncryptionKey: getEnvAsString("ENCRYPTION_KEY", ""),
			EnableCSRF:    getEnvAsBool("CSRF_ENABLED", false),
		},
	}
}

func GetLogLevel() string {
	if IsProduction() {
		return "info"
	}
	return "debug"
}

// Validate rejects settings that are only acceptable outside production.
func Validate(cfg *structs.Config) error {
	if cfg.Server.Environment != "production" {
		return nil
	}

	var errs []error
	if cfg.Session.Secret == "" || cfg.Session.Secret == DefaultSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	if key := cfg.Security.EncryptionKey; key != "" && len(key) != 32 {
		errs = append(errs, fmt.Errorf("ENCRYPTION_KEY must be 32 bytes, got %d", len(key)))
	}
	return errors.Join(errs...)
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
