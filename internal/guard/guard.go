// Package guard decides whether a principal may enter a protected route.
// Decisions are pure data so transport layers (HTTP middleware, templated
// redirects) can act on them uniformly.
package guard

import (
	"net/url"

	"github.com/noah-isme/school-pay-api/internal/models"
)

// DecisionKind enumerates the possible guard outcomes.
type DecisionKind int

const (
	// Render grants access to the requested route.
	Render DecisionKind = iota
	// Loading means session state is still being restored; callers should
	// hold the request rather than deny it.
	Loading
	// RedirectToLogin denies anonymous access; Location carries the login
	// path with the original destination preserved.
	RedirectToLogin
	// RedirectToRoleHome denies a role mismatch; Location carries the
	// principal's own landing page.
	RedirectToRoleHome
)

// Decision is the guard's verdict for one request.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Kind == Render
}

// Evaluate applies the access rules in order: an unsettled session yields
// Loading, an anonymous request is sent to login with the destination
// retained, and an authenticated principal whose role is not in allowedRoles
// is sent to their own home. An empty allowedRoles admits any authenticated
// principal.
func Evaluate(principal *models.Principal, loading bool, allowedRoles []models.Role, path string) Decision {
	if loading {
		return Decision{Kind: Loading}
	}
	if principal == nil {
		location := "/login"
		if path != "" && path != "/login" {
			location += "?next=" + url.QueryEscape(path)
		}
		return Decision{Kind: RedirectToLogin, Location: location}
	}
	if len(allowedRoles) == 0 {
		return Decision{Kind: Render}
	}
	for _, role := range allowedRoles {
		if principal.Role == role {
			return Decision{Kind: Render}
		}
	}
	return Decision{Kind: RedirectToRoleHome, Location: principal.Role.HomePath()}
}
