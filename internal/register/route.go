package register

import (
	"github.com/gin-gonic/gin"

	"pack/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, service *RegisterService, cookie session.CookieConfig) {
	h := &RegisterHandler{service: service, cookie: cookie}
	r.POST("/signup", h.handle)
}
