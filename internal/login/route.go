package login

import (
	"github.com/gin-gonic/gin"

	"pack/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, service *Service, cookie session.CookieConfig) {
	h := &Handler{service: service, cookie: cookie}
	r.POST("/login", h.handle)
}
