package settings

import (
	"github.com/gin-gonic/gin"

	"pack/internal/middleware"
	"pack/internal/model"
	"pack/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, service *Service, resolver middleware.IdentityResolver, cookie session.CookieConfig) {
	h := &SettingsHandler{service: service, cookie: cookie}

	g := r.Group("/settings", middleware.RequireUser(resolver))
	g.POST("/email/code", h.sendEmailCode)
	g.PUT("/email", h.changeEmail)
	g.PUT("/password", h.changePassword)
	g.PUT("/progress-emails", middleware.RequireRole(model.RoleStudent), h.setProgressEmails)
}
