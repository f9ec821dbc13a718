package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jusbook/utils"
)

// AdminAuthMiddleware accepts HS256 bearer tokens carrying the admin role.
// With no secret configured every admin request is refused.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		adminID, err := utils.ExtractAdminSubject(secret, tokenString)
		if err != nil {
			utils.GetLogger().Warn("Admin token rejected", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			return
		}

		c.Set("adminID", adminID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
