package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
)

// WithBearer validates the Authorization bearer token of JSON API calls.
// Requests already authenticated by a session cookie pass through. The
// verified token is forwarded unchanged to the GraphQL backend.
func WithBearer(verifier auth.Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.IsAuthenticated(c.Request.Context()) {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				logger.Warn("bearer verification failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		ctx := auth.WithTokenSource(c.Request.Context(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		ctx = auth.WithIdentity(ctx, id)
		ctx = auth.WithCacheScope(ctx, auth.ScopeOf("bearer", token))
		c.Request = c.Request.WithContext(ctx)
		c.Set(IdentityKey, id)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
