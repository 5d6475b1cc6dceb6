package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"promo_store_server/config"
	"promo_store_server/structs"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	DriverPGX    = "pgx"
	DriverPG     = "pg"
	DriverSQLite = "sqlite"
)

// DB wraps the bun database connection with additional functionality
type DB struct {
	*bun.DB
}

var instance *DB

// Connect establishes a connection to the database using centralized configuration
func Connect() (*DB, error) {
	return Open(config.GetConfig().Database, config.GetLogger())
}

// Open connects with the given settings. DB_DRIVER selects pgx (default),
// bun's own pgdriver, or sqlite for local runs.
func Open(dbCfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	var (
		bunDB *bun.DB
		err   error
	)

	switch strings.ToLower(dbCfg.Driver) {
	case DriverPGX, "":
		bunDB, err = openPGX(dbCfg)
	case DriverPG:
		bunDB = openPGDriver(dbCfg)
	case DriverSQLite:
		bunDB, err = openSQLite(dbCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	// Add query hook to log slow queries and connection errors
	bunDB.AddQueryHook(&connectionHealthHook{logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := bunDB.PingContext(ctx); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", dbCfg.Driver))

	return &DB{bunDB}, nil
}

func openPGX(dbCfg *structs.DatabaseConfig) (*bun.DB, error) {
	connConfig, err := pgx.ParseConfig(postgresDSN(dbCfg))
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	sqldb := stdlib.OpenDB(*connConfig)
	applyPool(sqldb, dbCfg)

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func openPGDriver(dbCfg *structs.DatabaseConfig) *bun.DB {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(postgresDSN(dbCfg)),
		pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
		pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
	)

	sqldb := sql.OpenDB(connector)
	applyPool(sqldb, dbCfg)

	return bun.NewDB(sqldb, pgdialect.New())
}

func openSQLite(dbCfg *structs.DatabaseConfig) (*bun.DB, error) {
	dsn := dbCfg.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite serializes writers; a single connection also keeps an in-memory
	// database alive for the lifetime of the pool
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func applyPool(sqldb *sql.DB, dbCfg *structs.DatabaseConfig) {
	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)
}

func postgresDSN(dbCfg *structs.DatabaseConfig) string {
	if dbCfg.DSN != "" {
		return dbCfg.DSN
	}

	query := url.Values{}
	query.Set("sslmode", dbCfg.SSLMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.User, dbCfg.Password),
		Host:     dbCfg.Host + ":" + strconv.Itoa(dbCfg.Port),
		Path:     "/" + dbCfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// Initialize sets up the global database instance using centralized configuration
func Initialize() error {
	db, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		log.Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// connectionHealthHook implements bun.QueryHook to monitor connection health
type connectionHealthHook struct {
	logger *gecho.Logger
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	// Log slow queries (over 1 second)
	if duration := time.Since(event.StartTime); duration > 1*time.Second {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	// Handle EOF errors specifically
	if event.Err != nil {
		if event.Err.Error() == "EOF" || event.Err.Error() == "unexpected EOF" {
			h.logger.Error("Database connection EOF error - connection may have been closed by server",
				gecho.Field("error", event.Err),
				gecho.Field("query", event.Query),
			)
		}
	}
}
