package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth/session"
)

// Gin context keys set by the auth middleware.
const (
	SessionKey  = "session"
	IdentityKey = "identity"
)

type SessionOptions struct {
	Store      session.Store
	Provider   auth.Provider // nil when login is disabled
	CookieName string
	Logger     *zap.Logger
}

// WithSession loads the session named by the cookie and, when it holds a
// token, installs the token source and identity in the request context.
// A missing or unreadable session leaves the request anonymous.
func WithSession(opt SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(opt.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := opt.Store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				opt.Logger.Warn("failed to load session", zap.Error(err))
			}
			c.Next()
			return
		}
		c.Set(SessionKey, sess)

		if !sess.Authenticated() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		var ts oauth2.TokenSource = oauth2.StaticTokenSource(sess.Token)
		if opt.Provider != nil {
			ts = &savingTokenSource{
				base:   opt.Provider.TokenSource(context.WithoutCancel(ctx), sess.Token),
				store:  opt.Store,
				sess:   sess,
				logger: opt.Logger,
			}
		}

		ctx = auth.WithTokenSource(ctx, ts)
		ctx = auth.WithIdentity(ctx, sess.Identity)
		ctx = auth.WithCacheScope(ctx, auth.ScopeOf("session", sess.ID))
		c.Request = c.Request.WithContext(ctx)
		c.Set(IdentityKey, sess.Identity)

		c.Next()
	}
}

// SessionFrom returns the session loaded by WithSession, or nil.
func SessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// SetSessionCookie writes the session cookie. Secure is set for https
// deployments.
func SetSessionCookie(c *gin.Context, name, id string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, id, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

// savingTokenSource persists refreshed tokens back to the session store.
type savingTokenSource struct {
	base   oauth2.TokenSource
	store  session.Store
	logger *zap.Logger

	mu   sync.Mutex
	sess *session.Session
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.Token != nil && s.sess.Token.AccessToken == tok.AccessToken {
		return tok, nil
	}

	s.sess.Token = tok
	if err := s.store.Save(context.Background(), s.sess); err != nil {
		s.logger.Warn("failed to save refreshed token", zap.String("session_id", s.sess.ID), zap.Error(err))
	}
	return tok, nil
}
