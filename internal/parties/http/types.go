package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/parties/service"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

// Handler bundles the dependencies for party pages and endpoints.
type Handler struct {
	svc    *service.PartyService
	shell  web.Shell
	logger *zap.Logger
}

func New(svc *service.PartyService, shell web.Shell, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, shell: shell, logger: logger}
}
