package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key the middleware stores decoded claims under.
const ClaimsKey = "claims"

// RequireAuth gates protected routes behind a valid session token. The
// Authorization header is accepted with or without the "Bearer " prefix.
func RequireAuth(a *Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			return
		}
		tokenStr := strings.TrimSpace(authz)
		if len(tokenStr) >= 7 && strings.EqualFold(tokenStr[:7], "bearer ") {
			tokenStr = strings.TrimSpace(tokenStr[7:])
		}
		claims, err := a.Parse(tokenStr)
		if err != nil {
			msg := ErrTokenInvalid.Error()
			if errors.Is(err, ErrTokenExpired) {
				msg = ErrTokenExpired.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims RequireAuth attached to the context.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}
