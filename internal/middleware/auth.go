package middleware

import (
	"net/http"
	"strings"
	"time"

	"gstbooks/internal/util"

	"github.com/gin-gonic/gin"
)

// context keys set by AuthMiddleware
const (
	CtxCompanyID = "companyID"
	CtxUserID    = "userID"
	CtxRole      = "role"
)

// AuthMiddleware validates the externally issued JWT and exposes the
// (companyID, userID, role) triple to handlers. Authentication and
// authorization themselves live in the identity service; this is only
// the boundary adapter.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "missing token")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, issuer, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.CompanyID == 0 {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "token has no company scope")
			c.Abort()
			return
		}

		c.Set(CtxCompanyID, claims.CompanyID)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// CompanyID returns the authenticated company scope.
func CompanyID(c *gin.Context) uint {
	return c.GetUint(CtxCompanyID)
}

// UserID returns the authenticated user id.
func UserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}
