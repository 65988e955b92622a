package class

import (
	"github.com/gin-gonic/gin"

	"pack/internal/middleware"
	"pack/internal/model"
)

func RegisterRoutes(r *gin.RouterGroup, service *ClassService, resolver middleware.IdentityResolver) {
	h := &ClassHandler{service: service}

	g := r.Group("/classes", middleware.RequireUser(resolver))
	g.GET("", h.list)
	g.POST("", middleware.RequireRole(model.RoleTeacher), h.create)
	g.POST("/join", middleware.RequireRole(model.RoleStudent), h.join)
}
