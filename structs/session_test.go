package structs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionRolesAreCopied(t *testing.T) {
	base := Session{ID: "s1"}

	admin := base.WithRole(RoleAdmin, 7)
	assert.True(t, admin.HasRole(RoleAdmin))
	assert.Equal(t, int64(7), admin.AdminID)
	assert.False(t, base.HasRole(RoleAdmin))

	again := admin.WithRole(RoleAdmin, 7)
	assert.Len(t, again.Roles, 1)

	revoked := admin.WithoutRole(RoleAdmin)
	assert.False(t, revoked.HasRole(RoleAdmin))
	assert.Zero(t, revoked.AdminID)
	assert.True(t, admin.HasRole(RoleAdmin))
}

func TestSessionCartTokenKeepsRoles(t *testing.T) {
	s := Session{ID: "s1"}.WithRole(RoleAdmin, 1).WithCartToken("cart-1")

	assert.Equal(t, "cart-1", s.CartToken)
	assert.True(t, s.HasRole(RoleAdmin))
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()

	assert.False(t, Session{}.IsExpired(now))
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.IsExpired(now))
	assert.True(t, Session{ExpiresAt: now}.IsExpired(now))
}
