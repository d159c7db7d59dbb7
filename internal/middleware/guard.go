package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-pay-api/internal/guard"
	"github.com/noah-isme/school-pay-api/internal/models"
	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
	"github.com/noah-isme/school-pay-api/pkg/response"
)

// Guard enforces route access. Anonymous requests get 401 with a Location
// header pointing at the login page (original destination retained in the
// next parameter); authenticated principals outside the allowed roles get
// 303 toward their own landing page. An empty role list admits any
// authenticated principal.
func Guard(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *models.Principal
		if claimsValue, exists := c.Get(ContextUserKey); exists {
			if claims, ok := claimsValue.(*models.JWTClaims); ok {
				principal = claims.PrincipalOf()
			}
		}

		decision := guard.Evaluate(principal, false, allowed, c.Request.URL.Path)
		switch decision.Kind {
		case guard.Render:
			c.Next()
		case guard.RedirectToLogin:
			c.Header("Location", decision.Location)
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
		case guard.RedirectToRoleHome:
			c.Header("Location", decision.Location)
			c.JSON(http.StatusSeeOther, response.Envelope{
				Error: appErrors.Clone(appErrors.ErrForbidden, "role not allowed for this route"),
				Meta:  map[string]interface{}{"redirect": decision.Location},
			})
			c.Abort()
		default:
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
		}
	}
}

// RequireAdmin shortens the common admin-only restriction.
func RequireAdmin() gin.HandlerFunc {
	return Guard(models.RoleAdmin)
}
