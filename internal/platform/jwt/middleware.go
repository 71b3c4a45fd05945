package jwtmw

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain/entity"
)

// ContextIdentity is the gin context key holding the authenticated entity.Identity.
const ContextIdentity = "identity"

const bearerPrefix = "Bearer "

// TokenValidator recovers an identity from a presented token.
type TokenValidator interface {
	Validate(token string) (entity.Identity, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
// Every rejection is answered with the same 401 body; the reason is only logged.
func AuthRequired(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		tokenStr := strings.TrimPrefix(auth, bearerPrefix)
		if !strings.HasPrefix(auth, bearerPrefix) || tokenStr == "" {
			reject(c, "missing bearer token", nil)
			return
		}

		// 2. Verify signature and expiry
		identity, err := validator.Validate(tokenStr)
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, ErrExpiredToken) {
				reason = "expired token"
			}
			reject(c, reason, err)
			return
		}

		// 3. Pass the identity to the next handler
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return entity.Identity{}, false
	}
	identity, ok := v.(entity.Identity)
	return identity, ok
}

func reject(c *gin.Context, reason string, err error) {
	slog.WarnContext(c.Request.Context(), "bearer authentication failed", "reason", reason, "error", err, "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
