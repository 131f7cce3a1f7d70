package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/shortlinks/internal/auth"
)

const (
	identityKey   = "identity"
	adminGrantKey = "admin_grant"
)

// RequireIdentity verifies the bearer token and stores the caller's identity
// in the gin context. Any failure aborts with 401 and a generic message.
func RequireIdentity(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c)
			return
		}

		identity, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireIdentity. It turns an admin identity
// into an AdminGrant and rejects everyone else with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		grant, err := auth.RequireAdmin(identityFrom(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Set(adminGrantKey, grant)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
}

// identityFrom returns the identity set by RequireIdentity, or the zero
// Identity (which every scoped service call rejects).
func identityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}

func adminGrantFrom(c *gin.Context) auth.AdminGrant {
	if v, ok := c.Get(adminGrantKey); ok {
		if grant, ok := v.(auth.AdminGrant); ok {
			return grant
		}
	}
	return auth.AdminGrant{}
}
