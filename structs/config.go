package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	Session   *SessionConfig
	Auth      *AuthConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Security  *SecurityConfig
}

type ServerConfig struct {
	AppName        string        // Promo Store
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	BodyLimit      int64         // in bytes
	CookieDomain   string
	SeedData       bool
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Driver       string // pgx, pg, sqlite
	DSN          string // overrides the host/port/user fields when set
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AutoMigrate  bool
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type SessionConfig struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Store      string // redis, memory
}

type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	Argon2Memory  uint32
	Argon2Time    uint32
	Argon2Threads uint8
	Argon2KeyLen  uint32
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	AuthLimit     int
	AuthWindow    time.Duration
	AdminLimit    int
	AdminWindow   time.Duration
}

type EmailConfig struct {
	ApiKey       string
	From         string
	SupportEmail string
}

type SecurityConfig struct {
	EncryptionKey string // 32 bytes, enables PII encryption on orders
	EnableCSRF    bool
}
