package http

import "github.com/gin-gonic/gin"

// RegisterPages attaches the HTML screens.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/projects", h.listPage)
	r.POST("/projects", h.createPage)
	r.GET("/projects/:id", h.detailPage)
	r.POST("/projects/:id", h.savePage)
	r.GET("/projects/:id/delete", h.confirmDeletePage)
	r.POST("/projects/:id/delete", h.deletePage)
}

// RegisterAPI attaches the JSON endpoints to an /api/v1 group.
func (h *Handler) RegisterAPI(rg gin.IRoutes) {
	rg.POST("/projects", h.create)
	rg.GET("/projects", h.list)
	rg.GET("/projects/:id", h.get)
	rg.PUT("/projects/:id", h.update)
	rg.DELETE("/projects/:id", h.delete)
	rg.GET("/project-statuses", h.statuses)
}
