package middleware

import (
	"net/http"
	"strings"

	"github.com/stratocost/stratocost/internal/analysis"
	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware authenticates requests with a Bearer token and stores the
// resolved caller in the gin context.
func AuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerKey, analysis.Caller{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// AdminOnly rejects callers without the admin role. It must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller.Role != cnst.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// CallerFrom returns the authenticated caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) analysis.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return analysis.Caller{}
	}
	caller, _ := v.(analysis.Caller)
	return caller
}
