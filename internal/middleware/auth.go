package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tshirt-studio-backend/internal/auth"
	"tshirt-studio-backend/internal/models"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "auth_token"

const UserIDKey = "user_id"

// SessionGuard authenticates a request from its session cookie. A missing
// cookie and a cookie that fails verification are distinct failures, both
// mapped to 401, so the frontend can tell "log in" from "session expired".
func SessionGuard(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Error("authentication required"))
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Error("invalid or expired session"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
