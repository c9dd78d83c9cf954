package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/login", h.Login)
	r.GET("/callback", h.Callback)
	r.POST("/logout", h.Logout)
}
