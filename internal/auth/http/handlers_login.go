package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth/session"
)

// Login starts the authorization-code flow. return_to is remembered in the
// session and honoured after the callback.
func (h *Handler) Login(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		sess = session.New()
	}
	sess.State = uuid.NewString()
	sess.ReturnTo = safeReturnTo(c.Query("return_to"))

	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.String(http.StatusInternalServerError, "An error occurred")
		return
	}

	middleware.SetSessionCookie(c, h.cookieName, sess.ID, h.maxAge, h.secure)
	c.Redirect(http.StatusFound, h.provider.LoginURL(sess.State))
}

// Callback completes the login: the state must match the one issued by Login.
// The session is re-issued under a new id once the user is signed in.
func (h *Handler) Callback(c *gin.Context) {
	if errCode := c.Query("error"); errCode != "" {
		h.logger.Warn("identity provider returned an error",
			zap.String("error", errCode),
			zap.String("description", c.Query("error_description")),
		)
		c.String(http.StatusUnauthorized, "Login failed")
		return
	}

	sess := middleware.SessionFrom(c)
	state := c.Query("state")
	if sess == nil || sess.State == "" || state != sess.State {
		c.String(http.StatusBadRequest, "Invalid login state")
		return
	}

	tok, err := h.provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Warn("code exchange failed", zap.Error(err))
		c.String(http.StatusUnauthorized, "Login failed")
		return
	}

	signedIn := session.New()
	signedIn.Token = tok
	signedIn.Identity = auth.IdentityFromTokens(h.logger, tok.AccessToken, auth.IDToken(tok))
	returnTo := sess.ReturnTo

	if err := h.store.Save(c.Request.Context(), signedIn); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.String(http.StatusInternalServerError, "An error occurred")
		return
	}
	if err := h.store.Delete(c.Request.Context(), sess.ID); err != nil {
		h.logger.Warn("failed to delete login session", zap.Error(err))
	}

	middleware.SetSessionCookie(c, h.cookieName, signedIn.ID, h.maxAge, h.secure)
	if returnTo == "" {
		returnTo = "/"
	}
	c.Redirect(http.StatusFound, returnTo)
}

// Logout drops the local session and ends the provider session. It only
// answers POST, and the Lax session cookie is not sent on cross-site posts.
func (h *Handler) Logout(c *gin.Context) {
	if sess := middleware.SessionFrom(c); sess != nil {
		if err := h.store.Delete(c.Request.Context(), sess.ID); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.cookieName, h.secure)
	c.Redirect(http.StatusSeeOther, h.provider.LogoutURL(h.baseURL))
}

// safeReturnTo only accepts local paths.
func safeReturnTo(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return ""
	}
	return p
}
