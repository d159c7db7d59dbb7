package models

import "time"

// Role represents the two access levels of the portal.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// HomePath is the landing route for a role after a silent authorization
// redirect.
func (r Role) HomePath() string {
	if r == RoleAdmin {
		return "/admin/dashboard"
	}
	return "/"
}

// Account is an identity record in the roster. Email is unique across the
// roster (compared case-insensitively, stored lower case). SecretHash holds
// the bcrypt hash of the credential secret and never leaves the server.
type Account struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	SecretHash string     `db:"secret_hash" json:"-"`
	Role       Role       `db:"role" json:"role"`
	Grade      string     `db:"grade" json:"grade,omitempty"`
	Phone      string     `db:"phone" json:"phone,omitempty"`
	Address    string     `db:"address" json:"address,omitempty"`
	LastLogin  *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Principal is the authenticated account of a session, or absent.
type Principal struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PrincipalOf projects an account into its session principal.
func PrincipalOf(a *Account) *Principal {
	if a == nil {
		return nil
	}
	return &Principal{AccountID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
