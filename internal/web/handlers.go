package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
)

// Home serves the landing page.
func (s Shell) Home(c *gin.Context) {
	id := auth.IdentityFrom(c.Request.Context())
	s.Render(c, http.StatusOK, TemplateHome, "Home", HomeContent{
		LoggedIn: auth.IsAuthenticated(c.Request.Context()),
		UserName: id.DisplayName(),
	})
}

// NoRoute renders the not-found page.
func (s Shell) NoRoute(c *gin.Context) {
	s.RenderAlert(c, http.StatusNotFound, "Not found", Alert{Kind: AlertWarning, Message: "Page not found"})
}

// Recovery is the fallback boundary: a panic while handling a page renders
// the static error page instead of an empty response.
func (s Shell) Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		if c.Writer.Written() {
			c.Abort()
			return
		}
		s.RenderAlert(c, http.StatusInternalServerError, "Error", Alert{Kind: AlertDanger, Message: MessageQueryError})
		c.Abort()
	})
}
