package middleware

import (
	"net/http"

	"charmforge-be/internal/auth"

	"github.com/gin-gonic/gin"
)

const AdminEmailKey = "adminEmail"

// AdminAuth rejects requests that do not carry a valid admin token.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		email, err := auth.ParseAdminToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(AdminEmailKey, email)
		c.Next()
	}
}
