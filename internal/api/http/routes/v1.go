package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	authmw "github.com/GoSim-25-26J-441/project-admin/internal/auth/middleware"
	partieshttp "github.com/GoSim-25-26J-441/project-admin/internal/parties/http"
	projectshttp "github.com/GoSim-25-26J-441/project-admin/internal/projects/http"
)

type V1Deps struct {
	// Session lets a browser session authenticate API calls too.
	Session  gin.HandlerFunc
	Verifier auth.Verifier
	Logger   *zap.Logger
	Projects *projectshttp.Handler
	Parties  *partieshttp.Handler
}

// RegisterV1 mounts the JSON API under /api/v1. Every route requires either a
// signed-in session or a bearer token.
func RegisterV1(r gin.IRouter, dep V1Deps) {
	api := r.Group("/api/v1")
	if dep.Session != nil {
		api.Use(dep.Session)
	}
	api.Use(authmw.WithBearer(dep.Verifier, dep.Logger))

	dep.Projects.RegisterAPI(api)
	dep.Parties.RegisterAPI(api)
}
