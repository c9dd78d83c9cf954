package auth

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Provider is the external identity provider: it owns login, logout and
// token issuance.
type Provider interface {
	LoginURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource
	LogoutURL(returnTo string) string
}

type Auth0Options struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Audience     string
	CallbackURL  string
}

// Auth0 implements Provider with the authorization-code flow.
type Auth0 struct {
	oauth    *oauth2.Config
	baseURL  string
	clientID string
	audience string
}

func NewAuth0(opt Auth0Options) *Auth0 {
	base := opt.Domain
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	return &Auth0{
		oauth: &oauth2.Config{
			ClientID:     opt.ClientID,
			ClientSecret: opt.ClientSecret,
			RedirectURL:  opt.CallbackURL,
			Scopes:       []string{"openid", "profile", "email", "offline_access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/authorize",
				TokenURL: base + "/oauth/token",
			},
		},
		baseURL:  base,
		clientID: opt.ClientID,
		audience: opt.Audience,
	}
}

func (a *Auth0) LoginURL(state string) string {
	var opts []oauth2.AuthCodeOption
	if a.audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", a.audience))
	}
	return a.oauth.AuthCodeURL(state, opts...)
}

func (a *Auth0) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return a.oauth.Exchange(ctx, code)
}

// TokenSource refreshes tok with its refresh token once it expires.
func (a *Auth0) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return a.oauth.TokenSource(ctx, tok)
}

func (a *Auth0) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("client_id", a.clientID)
	if returnTo != "" {
		q.Set("returnTo", returnTo)
	}
	return a.baseURL + "/v2/logout?" + q.Encode()
}

// IDToken returns the OpenID Connect id_token delivered with tok, if any.
func IDToken(tok *oauth2.Token) string {
	if tok == nil {
		return ""
	}
	s, _ := tok.Extra("id_token").(string)
	return s
}
