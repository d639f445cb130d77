package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mealshop/utils"
)

// AuthRequired validates the Bearer token and stores the user id and
// permission claims in the context. Anonymous or invalid requests are
// redirected to the home route, mirroring the login redirect of the HTML
// front end.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" || !strings.HasPrefix(token, "Bearer ") {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(token, "Bearer "))
		if err != nil || claims.UserID == 0 {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("claims", claims)
		c.Next()
	}
}
