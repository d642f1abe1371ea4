// Package middleware contains any custom middleware used in the app
package middleware

import (
	"context"
	"net/http"
	"strings"

	"feedhub/social-api/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is what the auth gate attaches to every request, authenticated
// or not
type Identity struct {
	IsAuthenticated bool
	UserID          string
	Email           string
}

// WithIdentity returns a context carrying the request identity
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the request identity. Requests that never passed
// the auth gate read as anonymous
func IdentityFrom(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey).(Identity); ok {
		return id
	}
	return Identity{}
}

// NewAuthMiddleware runs on every request. It always soft-fails: a
// missing, malformed or expired bearer token leaves the request anonymous
// and each operation decides for itself whether that's acceptable
func NewAuthMiddleware(tokens *security.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Identity{}

		header := c.GetHeader("Authorization")
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok && raw != "" {
			claims, err := tokens.Verify(raw)
			if err != nil {
				zap.L().Debug("Rejected bearer token",
					zap.String("requestID", c.GetString("requestID")),
					zap.Error(err))
			} else {
				id = Identity{
					IsAuthenticated: true,
					UserID:          claims.UserID,
					Email:           claims.Email,
				}
			}
		}

		if id.IsAuthenticated {
			c.Set("userID", id.UserID)
		}
		c.Set("isAuth", id.IsAuthenticated)

		// Mirror the identity into the request context so non-gin code
		// (the GraphQL resolvers) can read it
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))

		c.Next()
	}
}

// RequireAuth guards routes that need a subject. It must run after the
// auth gate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAuth") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authenticated",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
