package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/project-admin/internal/api/http"
	apimw "github.com/GoSim-25-26J-441/project-admin/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/project-admin/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	authhttp "github.com/GoSim-25-26J-441/project-admin/internal/auth/http"
	authmw "github.com/GoSim-25-26J-441/project-admin/internal/auth/middleware"
	partieshttp "github.com/GoSim-25-26J-441/project-admin/internal/parties/http"
	projectshttp "github.com/GoSim-25-26J-441/project-admin/internal/projects/http"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

type RouterDeps struct {
	Logger      *zap.Logger
	Renderer    *web.Renderer
	Shell       web.Shell
	CORSOrigins []string
	Session     authmw.SessionOptions
	// Login is nil when AUTH_PROVIDER=none.
	Login    *authhttp.Handler
	Verifier auth.Verifier
	Health   *httpapi.HealthHandler
	Projects *projectshttp.Handler
	Parties  *partieshttp.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.HTMLRender = dep.Renderer

	r.Use(apimw.RequestIDMiddleware(dep.Logger))
	r.Use(dep.Shell.Recovery(dep.Logger))
	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", apimw.RequestIDHeader},
			ExposeHeaders:    []string{apimw.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	dep.Health.RegisterRoutes(r)

	withSession := authmw.WithSession(dep.Session)

	pages := r.Group("/", withSession)
	pages.GET("/", dep.Shell.Home)
	if dep.Login != nil {
		dep.Login.Register(pages)
	}
	dep.Projects.RegisterPages(pages)
	dep.Parties.RegisterPages(pages)

	routes.RegisterV1(r, routes.V1Deps{
		Session:  withSession,
		Verifier: dep.Verifier,
		Logger:   dep.Logger,
		Projects: dep.Projects,
		Parties:  dep.Parties,
	})

	r.NoRoute(withSession, dep.Shell.NoRoute)

	return r
}
