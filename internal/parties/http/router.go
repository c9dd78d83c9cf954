package http

import "github.com/gin-gonic/gin"

// RegisterPages attaches the HTML screens.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/parties", h.listPage)
	r.GET("/parties/:id", h.detailPage)
	r.POST("/parties/:id", h.savePage)
}

// RegisterAPI attaches the JSON endpoints to an /api/v1 group.
func (h *Handler) RegisterAPI(rg gin.IRoutes) {
	rg.GET("/parties", h.list)
	rg.GET("/parties/:id", h.get)
	rg.PUT("/parties/:id", h.update)
	rg.GET("/role-types", h.roleTypes)
}
