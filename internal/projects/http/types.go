package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/projects/service"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

// Handler bundles the dependencies for project pages and endpoints.
type Handler struct {
	svc    *service.ProjectService
	shell  web.Shell
	logger *zap.Logger
}

func New(svc *service.ProjectService, shell web.Shell, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, shell: shell, logger: logger}
}
