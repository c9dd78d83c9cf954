package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/config"
	httpapi "github.com/GoSim-25-26J-441/project-admin/internal/api/http"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	authhttp "github.com/GoSim-25-26J-441/project-admin/internal/auth/http"
	authmw "github.com/GoSim-25-26J-441/project-admin/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth/session"
	"github.com/GoSim-25-26J-441/project-admin/internal/graphql"
	"github.com/GoSim-25-26J-441/project-admin/internal/janitor"
	partieshttp "github.com/GoSim-25-26J-441/project-admin/internal/parties/http"
	partyrepo "github.com/GoSim-25-26J-441/project-admin/internal/parties/repository"
	partysvc "github.com/GoSim-25-26J-441/project-admin/internal/parties/service"
	projectdomain "github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
	projectshttp "github.com/GoSim-25-26J-441/project-admin/internal/projects/http"
	projectrepo "github.com/GoSim-25-26J-441/project-admin/internal/projects/repository"
	projectsvc "github.com/GoSim-25-26J-441/project-admin/internal/projects/service"
	"github.com/GoSim-25-26J-441/project-admin/internal/querycache"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

const ServiceName = "project-admin"

// App is the assembled server: router, background janitor and the
// resources to release on shutdown.
type App struct {
	Router  *gin.Engine
	Janitor *janitor.Scheduler

	logger  *zap.Logger
	closers []func() error
}

// Overrides replaces collaborators that talk to external systems. Zero
// fields are built from the configuration.
type Overrides struct {
	Provider auth.Provider
	Verifier auth.Verifier
	Sessions session.Store
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, ov Overrides) (*App, error) {
	app := &App{logger: logger, Janitor: janitor.NewScheduler(logger)}

	cache := querycache.New(cfg.Cache.TTL, logger)
	if err := app.Janitor.Add(cfg.Cache.SweepSchedule, janitor.Task{Name: "querycache", Run: cache.Sweep}); err != nil {
		return nil, err
	}

	store, err := app.sessionStore(ctx, cfg, ov.Sessions)
	if err != nil {
		app.Close()
		return nil, err
	}

	provider := ov.Provider
	if provider == nil && cfg.Auth.Provider == config.AuthProviderAuth0 {
		provider = auth.NewAuth0(auth.Auth0Options{
			Domain:       cfg.Auth.Domain,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			Audience:     cfg.Auth.Audience,
			CallbackURL:  cfg.CallbackURL(),
		})
	}

	verifier := ov.Verifier
	if verifier == nil {
		verifier, err = newVerifier(ctx, cfg, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	gql := graphql.NewClient(graphql.Options{
		Endpoint:          cfg.GraphQL.Endpoint,
		AdminSecret:       cfg.GraphQL.AdminSecret,
		RequestsPerSecond: cfg.GraphQL.RequestsPerSecond,
		Burst:             cfg.GraphQL.Burst,
		Timeout:           cfg.GraphQL.Timeout,
		Token:             auth.OptionalBearerToken,
		Logger:            logger.Named("graphql"),
	})

	parties := partysvc.NewPartyService(partyrepo.NewRepo(gql), cache, logger.Named("parties"))
	projects := projectsvc.NewProjectService(projectrepo.NewProjectRepository(gql), ownersFrom(parties), cache, logger.Named("projects"))

	renderer, err := web.NewRenderer()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	shell := web.Shell{LoginEnabled: provider != nil}
	var login *authhttp.Handler
	if provider != nil {
		login = authhttp.New(authhttp.Options{
			Provider:   provider,
			Store:      store,
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			BaseURL:    cfg.Server.BaseURL,
			Secure:     strings.HasPrefix(cfg.Server.BaseURL, "https://"),
			Logger:     logger.Named("auth"),
		})
	}

	app.Router = BuildRouter(RouterDeps{
		Logger:      logger,
		Renderer:    renderer,
		Shell:       shell,
		CORSOrigins: cfg.CORS.AllowOrigins,
		Session: authmw.SessionOptions{
			Store:      store,
			Provider:   provider,
			CookieName: cfg.Session.CookieName,
			Logger:     logger.Named("session"),
		},
		Login:    login,
		Verifier: verifier,
		Health: httpapi.NewHealthHandler(httpapi.HealthDeps{
			ServiceName: ServiceName,
			Version:     cfg.App.Version,
			Sessions:    store,
			Cache:       cache,
			GraphQL:     gql,
		}),
		Projects: projectshttp.New(projects, shell, logger.Named("projects")),
		Parties:  partieshttp.New(parties, shell, logger.Named("parties")),
	})

	return app, nil
}

func (a *App) sessionStore(ctx context.Context, cfg *config.Config, override session.Store) (session.Store, error) {
	if override != nil {
		return override, nil
	}

	if cfg.Session.Store == config.SessionStoreRedis {
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.logger.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
		return session.NewRedisStore(client, cfg.Session.TTL), nil
	}

	mem := session.NewMemoryStore(cfg.Session.TTL)
	if err := a.Janitor.Add(cfg.Cache.SweepSchedule, janitor.Task{Name: "sessions", Run: mem.Sweep}); err != nil {
		return nil, err
	}
	return mem, nil
}

func newVerifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (auth.Verifier, error) {
	if cfg.Auth.FirebaseCredentialsPath == "" {
		return auth.ClaimsVerifier{}, nil
	}
	client, err := auth.InitializeFirebase(ctx, cfg.Auth.FirebaseCredentialsPath)
	if err != nil {
		return nil, err
	}
	logger.Info("verifying API bearer tokens with Firebase")
	return auth.NewFirebaseVerifier(client), nil
}

// ownersFrom lists project owner candidates from the party list.
func ownersFrom(parties *partysvc.PartyService) projectsvc.OwnerLister {
	return projectsvc.OwnerListerFunc(func(ctx context.Context) ([]projectdomain.Owner, error) {
		items, err := parties.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]projectdomain.Owner, 0, len(items))
		for _, p := range items {
			out = append(out, projectdomain.Owner{ID: p.PartyID, Name: p.Name()})
		}
		return out, nil
	})
}

// Close releases external connections. The janitor is stopped separately so
// callers can wait for running tasks.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
