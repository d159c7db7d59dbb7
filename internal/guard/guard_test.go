package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/school-pay-api/internal/models"
)

func TestEvaluateLoading(t *testing.T) {
	decision := Evaluate(nil, true, []models.Role{models.RoleAdmin}, "/admin/users")
	assert.Equal(t, Loading, decision.Kind)
	assert.False(t, decision.Allowed())
}

func TestEvaluateAnonymousRedirectsToLogin(t *testing.T) {
	decision := Evaluate(nil, false, nil, "/payments")
	assert.Equal(t, RedirectToLogin, decision.Kind)
	assert.Equal(t, "/login?next=%2Fpayments", decision.Location)
}

func TestEvaluateAnonymousOnLoginPath(t *testing.T) {
	decision := Evaluate(nil, false, nil, "/login")
	assert.Equal(t, RedirectToLogin, decision.Kind)
	assert.Equal(t, "/login", decision.Location)
}

func TestEvaluateRoleMismatch(t *testing.T) {
	student := &models.Principal{AccountID: "student-001", Role: models.RoleStudent}
	decision := Evaluate(student, false, []models.Role{models.RoleAdmin}, "/admin/dashboard")
	assert.Equal(t, RedirectToRoleHome, decision.Kind)
	assert.Equal(t, "/", decision.Location)

	admin := &models.Principal{AccountID: "admin-001", Role: models.RoleAdmin}
	decision = Evaluate(admin, false, []models.Role{models.RoleStudent}, "/")
	assert.Equal(t, RedirectToRoleHome, decision.Kind)
	assert.Equal(t, "/admin/dashboard", decision.Location)
}

func TestEvaluateAllowed(t *testing.T) {
	admin := &models.Principal{AccountID: "admin-001", Role: models.RoleAdmin}

	decision := Evaluate(admin, false, []models.Role{models.RoleAdmin}, "/admin/dashboard")
	assert.True(t, decision.Allowed())

	// No role restriction admits any authenticated principal.
	decision = Evaluate(admin, false, nil, "/payments")
	assert.True(t, decision.Allowed())
}
