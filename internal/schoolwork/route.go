package schoolwork

import (
	"github.com/gin-gonic/gin"

	"pack/internal/middleware"
	"pack/internal/model"
)

func RegisterRoutes(r *gin.RouterGroup, service *SchoolworkService, resolver middleware.IdentityResolver) {
	h := &SchoolworkHandler{service: service}

	g := r.Group("/schoolwork", middleware.RequireUser(resolver), middleware.RequireRole(model.RoleStudent))
	g.GET("", h.overview)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}
