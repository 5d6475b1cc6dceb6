package structs

import (
	"slices"
	"time"
)

type Role string

const RoleAdmin Role = "admin"

// Session is the server-side state behind the session cookie. It is a value
// type: the With* helpers return modified copies and the caller persists them
// through the session store.
type Session struct {
	ID        string    `json:"id"`
	CartToken string    `json:"cartToken,omitempty"`
	Roles     []Role    `json:"roles,omitempty"`
	AdminID   int64     `json:"adminId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) HasRole(role Role) bool {
	return slices.Contains(s.Roles, role)
}

func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s Session) WithCartToken(token string) Session {
	s.Roles = slices.Clone(s.Roles)
	s.CartToken = token
	return s
}

func (s Session) WithRole(role Role, adminID int64) Session {
	s.Roles = slices.Clone(s.Roles)
	if !slices.Contains(s.Roles, role) {
		s.Roles = append(s.Roles, role)
	}
	s.AdminID = adminID
	return s
}

func (s Session) WithoutRole(role Role) Session {
	s.Roles = slices.DeleteFunc(slices.Clone(s.Roles), func(r Role) bool { return r == role })
	if role == RoleAdmin {
		s.AdminID = 0
	}
	return s
}
