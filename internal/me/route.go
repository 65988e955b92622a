package me

import (
	"github.com/gin-gonic/gin"

	"pack/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, resolver middleware.IdentityResolver) {
	handler := &MeHandler{}
	r.GET("/user", middleware.RequireUser(resolver), handler.GetCurrentUser)
}
