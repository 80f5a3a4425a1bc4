package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServiceTokenAuth authenticates requests with a single shared bearer token.
// An empty configured token disables the check, which is the expected local
// development setup.
func ServiceTokenAuth(serviceToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceToken == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		provided, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(provided), []byte(serviceToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "missing or invalid service token",
				},
			})
			return
		}

		c.Next()
	}
}
