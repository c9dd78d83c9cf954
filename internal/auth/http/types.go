package http

import (
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/auth/session"
)

type Options struct {
	Provider   auth.Provider
	Store      session.Store
	CookieName string
	TTL        time.Duration
	// BaseURL is where the provider sends the browser after logout.
	BaseURL string
	Secure  bool
	Logger  *zap.Logger
}

type Handler struct {
	provider   auth.Provider
	store      session.Store
	cookieName string
	maxAge     int
	baseURL    string
	secure     bool
	logger     *zap.Logger
}

func New(opt Options) *Handler {
	return &Handler{
		provider:   opt.Provider,
		store:      opt.Store,
		cookieName: opt.CookieName,
		maxAge:     int(opt.TTL / time.Second),
		baseURL:    opt.BaseURL,
		secure:     opt.Secure,
		logger:     opt.Logger,
	}
}
