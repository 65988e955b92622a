package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pack/internal/authz"
	"pack/internal/middleware"
	"pack/internal/model"
)

func RegisterRoutes(r gin.IRouter, resolver middleware.IdentityResolver, loginPath string) {
	h := &PageHandler{loginPath: loginPath}

	g := r.Group("", middleware.OptionalUser(resolver))
	g.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	g.GET("/login", h.public("login", "Log in"))
	g.GET("/signup", h.public("signup", "Sign up"))
	g.GET("/dashboard", h.dashboard)
	g.GET("/dashboard/student", h.restricted("student", "Dashboard", authz.RoleIs(model.RoleStudent)))
	g.GET("/dashboard/teacher", h.restricted("teacher", "Dashboard", authz.RoleIs(model.RoleTeacher)))
	g.GET("/settings", h.restricted("settings", "Settings", authz.Anyone))
}
