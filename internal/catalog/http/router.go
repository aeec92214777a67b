package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bionano-bdd/bddb-backend/internal/auth"
)

// Register wires the catalog routes onto the projects group. Reads are
// public; owner mutations sit behind the JWT middleware.
func Register(rg *gin.RouterGroup, h *Handler, jwtSecret string) {
	rg.GET("", h.list)
	rg.GET("/project", h.getProject)
	rg.PUT("/project/views", h.incViews)

	rg.GET("/comments", h.listComments)
	rg.POST("/comments", h.createComment)

	authed := rg.Group("")
	authed.Use(auth.Middleware(jwtSecret))
	authed.POST("/project", h.create)
	authed.PUT("/project", h.update)
	authed.PUT("/project/associated", h.updateAssociated)
	authed.DELETE("/project", h.delete)
}
