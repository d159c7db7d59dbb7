package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an account.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Secret    string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token and principal info.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
	IssuedAt    time.Time  `json:"issued_at"`
	Principal   *Principal `json:"principal"`
}

// RegisterRequest is the self-service registration payload. Role is always
// student on this path.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Secret    string `json:"password" validate:"required,min=6"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// JWTClaims represents the JWT payload for session tokens. Subject carries
// the session id, which keys the persisted principal snapshot.
type JWTClaims struct {
	SessionID string `json:"session_id"`
	AccountID string `json:"account_id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// PrincipalOf projects the claims into the session principal.
func (c *JWTClaims) PrincipalOf() *Principal {
	if c == nil {
		return nil
	}
	return &Principal{AccountID: c.AccountID, Name: c.Name, Email: c.Email, Role: c.Role}
}
