package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/utils"
)

const ContextKeyClientIP = "client_ip"

// ClientIP resolves the caller's address once per request
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClientIP, utils.ExtractClientIP(c))
		c.Next()
	}
}

// GetClientIP returns the address stored by ClientIP, resolving it if the
// middleware did not run
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(ContextKeyClientIP); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
