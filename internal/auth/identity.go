package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

var (
	// ErrNoToken means the caller has no session with an access token.
	ErrNoToken = errors.New("no access token")
)

// Identity is the signed-in user as seen by the admin UI.
type Identity struct {
	Subject string `json:"sub"`
	UserID  string `json:"user_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (i Identity) IsZero() bool {
	return i.Subject == ""
}

// DisplayName picks the most readable label for the navbar.
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return i.Subject
	}
}

type identityKey struct{}
type tokenSourceKey struct{}
type cacheScopeKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity, or the zero Identity for
// anonymous requests.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

func WithTokenSource(ctx context.Context, ts oauth2.TokenSource) context.Context {
	return context.WithValue(ctx, tokenSourceKey{}, ts)
}

// WithCacheScope records the partition of the query cache this caller reads
// from. Only the auth middleware sets it, from a credential the server has
// issued or the caller holds in full.
func WithCacheScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, cacheScopeKey{}, scope)
}

// CacheScope returns the caller's cache partition. Anonymous callers share
// the empty scope. The identity claims are never used: they can be read from
// a token whose signature nobody has checked.
func CacheScope(ctx context.Context) string {
	scope, _ := ctx.Value(cacheScopeKey{}).(string)
	return scope
}

// ScopeOf derives a cache scope from a secret such as a session id or a raw
// bearer token. The secret itself never appears in keys or logs.
func ScopeOf(kind, secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// IsAuthenticated reports whether the request carries an access token.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := ctx.Value(tokenSourceKey{}).(oauth2.TokenSource)
	return ok
}

// BearerToken returns the current access token, refreshing it through the
// identity provider when it has expired.
func BearerToken(ctx context.Context) (string, error) {
	ts, ok := ctx.Value(tokenSourceKey{}).(oauth2.TokenSource)
	if !ok {
		return "", ErrNoToken
	}
	tok, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", ErrNoToken
	}
	return tok.AccessToken, nil
}

// OptionalBearerToken is BearerToken with anonymous callers mapped to an
// empty token, the shape the GraphQL client expects.
func OptionalBearerToken(ctx context.Context) (string, error) {
	tok, err := BearerToken(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	return tok, err
}
