package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealshop/utils"
)

// RequirePermission gates a route on a single permission flag. Every admin
// handler mounts its own instance, so flags are re-checked independently per
// route. Missing permission redirects home instead of erroring, like the
// original permission-guarded pages.
func RequirePermission(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get("claims")
		if !exists {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		claims, ok := claimsValue.(*utils.CustomClaims)
		if !ok || !claims.HasPerm(name) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
