package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const hasuraClaimsNamespace = "https://hasura.io/jwt/claims"

// ParseClaims reads the identity claims of a JWT without checking its
// signature. The GraphQL backend verifies every token it receives; the admin
// UI only needs the claims for display and cache scoping.
func ParseClaims(token string) (Identity, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, nil, fmt.Errorf("parse token: %w", err)
	}

	id := Identity{
		Subject: stringClaim(claims, "sub"),
		Name:    stringClaim(claims, "name"),
		Email:   stringClaim(claims, "email"),
		UserID:  projectUserID(claims),
	}
	if id.Subject == "" {
		return Identity{}, nil, fmt.Errorf("parse token: missing sub claim")
	}
	return id, claims, nil
}

// IdentityFromTokens builds the session identity from the access token,
// filling display fields from the ID token when present. Failures are logged
// and produce the zero Identity.
func IdentityFromTokens(logger *zap.Logger, accessToken, idToken string) Identity {
	id, _, err := ParseClaims(accessToken)
	if err != nil {
		logger.Warn("Error getting user ID from token", zap.Error(err))
		return Identity{}
	}

	if idToken != "" {
		if profile, _, err := ParseClaims(idToken); err == nil {
			if id.Name == "" {
				id.Name = profile.Name
			}
			if id.Email == "" {
				id.Email = profile.Email
			}
		}
	}
	return id
}

// CurrentIdentity re-reads the identity from the caller's current access
// token.
func CurrentIdentity(ctx context.Context, logger *zap.Logger) Identity {
	tok, err := BearerToken(ctx)
	if err != nil {
		logger.Warn("Error getting user ID from token", zap.Error(err))
		return Identity{}
	}
	return IdentityFromTokens(logger, tok, "")
}

// projectUserID reads app_metadata.project.user_id, falling back to the
// Hasura x-hasura-user-id claim.
func projectUserID(claims jwt.MapClaims) string {
	if meta, ok := claims["app_metadata"].(map[string]any); ok {
		if project, ok := meta["project"].(map[string]any); ok {
			if uid, ok := project["user_id"].(string); ok && uid != "" {
				return uid
			}
		}
	}
	if hasura, ok := claims[hasuraClaimsNamespace].(map[string]any); ok {
		if uid, ok := hasura["x-hasura-user-id"].(string); ok {
			return uid
		}
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func expired(claims jwt.MapClaims, now time.Time) bool {
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
