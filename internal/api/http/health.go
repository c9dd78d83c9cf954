package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-admin/internal/graphql"
	"github.com/GoSim-25-26J-441/project-admin/internal/querycache"
)

type HealthResponse struct {
	Status       string                   `json:"status"`
	Timestamp    time.Time                `json:"timestamp"`
	Service      string                   `json:"service"`
	Version      string                   `json:"version"`
	SessionStore string                   `json:"session_store,omitempty"`
	Cache        *querycache.Stats        `json:"cache,omitempty"`
	GraphQL      *graphql.MetricsSnapshot `json:"graphql,omitempty"`
}

// Pinger is satisfied by the session store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthDeps struct {
	ServiceName string
	Version     string
	Sessions    Pinger
	Cache       *querycache.Cache
	GraphQL     *graphql.Client
}

type HealthHandler struct {
	serviceName string
	version     string
	sessions    Pinger
	cache       *querycache.Cache
	graphql     *graphql.Client
}

func NewHealthHandler(dep HealthDeps) *HealthHandler {
	return &HealthHandler{
		serviceName: dep.ServiceName,
		version:     dep.Version,
		sessions:    dep.Sessions,
		cache:       dep.Cache,
		graphql:     dep.GraphQL,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	storeStatus := "disabled"
	if h.sessions != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.sessions.Ping(pingCtx); err != nil {
			storeStatus = "down"
			status = "degraded"
		} else {
			storeStatus = "up"
		}
	}

	resp := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		SessionStore: storeStatus,
	}
	if h.cache != nil {
		stats := h.cache.Stats()
		resp.Cache = &stats
	}
	if h.graphql != nil {
		m := h.graphql.Metrics()
		resp.GraphQL = &m
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
