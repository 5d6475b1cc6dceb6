package services

import (
	"context"
	"errors"
	"fmt"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// SessionStore persists sessions by id. Get returns (nil, nil) for unknown or
// expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*structs.Session, error)
	Save(ctx context.Context, session structs.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions as JSON under session:<id> and lets Redis
// expire them.
type RedisSessionStore struct {
	cache *CacheService
}

func NewRedisSessionStore(cache *CacheService) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (rs *RedisSessionStore) Get(ctx context.Context, id string) (*structs.Session, error) {
	return getJSON[structs.Session](ctx, rs.cache, sessionKey(id))
}

func (rs *RedisSessionStore) Save(ctx context.Context, session structs.Session, ttl time.Duration) error {
	return setJSON(ctx, rs.cache, sessionKey(session.ID), session, ttl)
}

func (rs *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return rs.cache.Delete(ctx, sessionKey(id))
}

// MemorySessionStore is a process-local store for development and tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	session   structs.Session
	expiresAt time.Time
}

const memoryStorePruneAt = 10000

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (ms *MemorySessionStore) Get(_ context.Context, id string) (*structs.Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.sessions[id]
	if !ok {
		return nil, nil
	}
	if !ms.now().Before(entry.expiresAt) {
		delete(ms.sessions, id)
		return nil, nil
	}

	session := entry.session
	return &session, nil
}

func (ms *MemorySessionStore) Save(_ context.Context, session structs.Session, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if len(ms.sessions) >= memoryStorePruneAt {
		for id, entry := range ms.sessions {
			if !now.Before(entry.expiresAt) {
				delete(ms.sessions, id)
			}
		}
	}

	ms.sessions[session.ID] = memorySession{session: session, expiresAt: now.Add(ttl)}
	return nil
}

func (ms *MemorySessionStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.sessions, id)
	return nil
}

// SessionService issues and resolves the anonymous session behind the
// session cookie. The cookie carries a signed token naming the session id;
// the session itself lives in the store.
type SessionService struct {
	logger *gecho.Logger
	store  SessionStore
	secret string
	ttl    time.Duration
}

func NewSessionService(logger *gecho.Logger, store SessionStore, cfg *structs.SessionConfig) *SessionService {
	return &SessionService{
		logger: logger,
		store:  store,
		secret: cfg.Secret,
		ttl:    cfg.TTL,
	}
}

// Create starts a new session. The cart token is fixed here so concurrent
// requests on the same session always share one cart.
func (ss *SessionService) Create(ctx context.Context) (structs.Session, error) {
	now := time.Now().UTC()
	session := structs.Session{
		ID:        uuid.NewString(),
		CartToken: uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ss.ttl),
	}

	if err := ss.save(ctx, session); err != nil {
		return structs.Session{}, err
	}
	return session, nil
}

// Load verifies the cookie token and returns the stored session.
// lib.ErrInvalidToken or lib.ErrExpiredToken mean the caller should start a
// new session.
func (ss *SessionService) Load(ctx context.Context, token string) (structs.Session, error) {
	claims, err := lib.ParseSessionToken(token, ss.secret)
	if err != nil {
		return structs.Session{}, err
	}

	session, err := ss.store.Get(ctx, claims.SessionID)
	if err != nil {
		ss.logger.Error("Failed to load session", gecho.Field("error", err))
		return structs.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return structs.Session{}, fmt.Errorf("%w: session no longer exists", lib.ErrExpiredToken)
	}
	if session.IsExpired(time.Now()) {
		_ = ss.store.Delete(ctx, session.ID)
		return structs.Session{}, lib.ErrExpiredToken
	}

	return *session, nil
}

// IssueToken signs a cookie value for the session.
func (ss *SessionService) IssueToken(session structs.Session) (string, error) {
	return lib.IssueSessionToken(session.ID, session.ExpiresAt, ss.secret)
}

// EnsureCartToken backfills the cart token of a session stored without one.
// The token is derived from the session id, so racing requests agree on it.
func (ss *SessionService) EnsureCartToken(ctx context.Context, session structs.Session) (structs.Session, error) {
	if session.CartToken != "" {
		return session, nil
	}

	updated := session.WithCartToken(session.ID)
	if err := ss.save(ctx, updated); err != nil {
		return session, err
	}
	return updated, nil
}

// GrantRole adds role to the session under a fresh session id. The cart
// token carries over, so the cart is kept.
func (ss *SessionService) GrantRole(ctx context.Context, session structs.Session, role structs.Role, adminID int64) (structs.Session, error) {
	granted := session.WithRole(role, adminID)
	granted.ID = uuid.NewString()

	if err := ss.save(ctx, granted); err != nil {
		return session, err
	}
	if err := ss.store.Delete(ctx, session.ID); err != nil {
		ss.logger.Warn("Failed to drop rotated session", gecho.Field("error", err))
	}
	return granted, nil
}

func (ss *SessionService) RevokeRole(ctx context.Context, session structs.Session, role structs.Role) (structs.Session, error) {
	if !session.HasRole(role) {
		return session, nil
	}

	revoked := session.WithoutRole(role)
	if err := ss.save(ctx, revoked); err != nil {
		return session, err
	}
	return revoked, nil
}

func (ss *SessionService) save(ctx context.Context, session structs.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	if err := ss.store.Save(ctx, session, ttl); err != nil {
		ss.logger.Error("Failed to save session", gecho.Field("error", err))
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
