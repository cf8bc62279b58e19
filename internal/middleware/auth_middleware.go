package middleware

import (
	"net/http"
	"strings"

	"syncboard/internal/auth"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the authenticated auth.Principal.
const PrincipalKey = "principal"

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the caller's principal on the context. Tokens from another issuer are
// rejected. The active organization is not required here; actions that need
// one check it themselves.
func JWTAuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		principal, err := auth.ParseToken(secret, issuer, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by JWTAuthMiddleware, or the
// zero principal when the request was not authenticated.
func GetPrincipal(c *gin.Context) auth.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}
