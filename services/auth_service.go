package services

import (
	"context"
	"errors"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
)

// AuthService is the admin credential store.
type AuthService struct {
	logger *gecho.Logger
	db     *database.DB
	params structs.ArgonParams

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(logger *gecho.Logger, db *database.DB, cfg *structs.AuthConfig) *AuthService {
	params := lib.DefaultArgonParams
	if cfg != nil {
		if cfg.Argon2Memory > 0 {
			params.Memory = cfg.Argon2Memory
		}
		if cfg.Argon2Time > 0 {
			params.Time = cfg.Argon2Time
		}
		if cfg.Argon2Threads > 0 {
			params.Threads = cfg.Argon2Threads
		}
		if cfg.Argon2KeyLen > 0 {
			params.KeyLen = cfg.Argon2KeyLen
		}
	}

	return &AuthService{
		logger: logger,
		db:     db,
		params: params,
	}
}

// CreateAdmin stores a new admin. A taken username is lib.ErrConflict.
func (as *AuthService) CreateAdmin(ctx context.Context, username, password string) (*tables.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, lib.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, lib.NewValidationError("password", "is required")
	}

	hash, err := lib.HashPassword(password, as.params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &tables.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         string(structs.RoleAdmin),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := database.Create(as.db, ctx, admin)
	if err != nil {
		err = lib.MapDBError(err)
		if errors.Is(err, lib.ErrConflict) {
			return nil, fmt.Errorf("admin %q already exists: %w", username, err)
		}
		as.logger.Error("Failed to create admin", gecho.Field("error", err), gecho.Field("username", username))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return created, nil
}

// EnsureAdmin creates the bootstrap admin unless the username already
// exists. Empty credentials are a no-op.
func (as *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		as.logger.Warn("No bootstrap admin configured, admin routes stay locked until one is created")
		return nil
	}

	_, err := as.CreateAdmin(ctx, username, password)
	if errors.Is(err, lib.ErrConflict) {
		as.logger.Debug("Bootstrap admin already present", gecho.Field("username", username))
		return nil
	}
	if err != nil {
		return err
	}

	as.logger.Info("Bootstrap admin created", gecho.Field("username", username))
	return nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords both return lib.ErrInvalidCredentials after a full hash.
func (as *AuthService) Authenticate(ctx context.Context, username, password string) (*tables.Admin, error) {
	admin, err := database.Query[tables.Admin](as.db).
		Where("username", strings.TrimSpace(username)).
		First(ctx)
	if err != nil {
		as.logger.Error("Failed to look up admin", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if admin == nil {
		// burn the same work as a real verification
		_, _ = lib.VerifyPassword(password, as.getDummyHash())
		return nil, lib.ErrInvalidCredentials
	}

	ok, err := lib.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		as.logger.Error("Stored admin hash is unreadable", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		return nil, lib.ErrInvalidCredentials
	}
	if !ok {
		return nil, lib.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	admin.LastLoginAt = &now
	if _, err := database.Query[tables.Admin](as.db).UpdateModel(ctx, admin, "last_login_at"); err != nil {
		as.logger.Warn("Failed to record admin login", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
	}

	return admin, nil
}

func (as *AuthService) GetAdmin(ctx context.Context, id int64) (*tables.Admin, error) {
	admin, err := database.FindByID[tables.Admin](as.db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	if admin == nil {
		return nil, fmt.Errorf("admin %d: %w", id, lib.ErrNotFound)
	}
	return admin, nil
}

// SessionAdmin returns the account behind an admin session. A session without
// the role, or whose account has since been removed, gets lib.ErrUnauthorized.
func (as *AuthService) SessionAdmin(ctx context.Context, session structs.Session) (*tables.Admin, error) {
	if !session.HasRole(structs.RoleAdmin) || session.AdminID == 0 {
		return nil, lib.ErrUnauthorized
	}

	admin, err := as.GetAdmin(ctx, session.AdminID)
	if errors.Is(err, lib.ErrNotFound) {
		return nil, fmt.Errorf("%w: admin %d no longer exists", lib.ErrUnauthorized, session.AdminID)
	}
	return admin, err
}

func (as *AuthService) getDummyHash() string {
	as.dummyOnce.Do(func() {
		hash, err := lib.HashPassword("not-a-real-password", as.params)
		if err != nil {
			as.logger.Error("Failed to build dummy hash", gecho.Field("error", err))
			return
		}
		as.dummyHash = hash
	})
	return as.dummyHash
}
