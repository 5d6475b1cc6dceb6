package structs

import "time"

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type SessionClaims struct {
	SessionID string    `json:"sid"`
	Iat       time.Time `json:"iat"`
	Exp       time.Time `json:"exp"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminStatus struct {
	IsAdmin  bool   `json:"isAdmin"`
	Username string `json:"username,omitempty"`
}
