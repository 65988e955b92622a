// Package page serves the server-rendered pages. The gate has already turned
// away requests without a session; pages still resolve the identity and pick
// where a caller belongs by role.
package page

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"pack/internal/authz"
	"pack/internal/middleware"
	"pack/internal/model"
)

type view struct {
	Title   string
	User    *model.Identity
	Landing string
}

type PageHandler struct {
	loginPath string
}

func (h *PageHandler) render(c *gin.Context, name, title string, id *model.Identity) {
	v := view{Title: title, User: id}
	if id != nil {
		v.Landing = authz.LandingPage(id.Role)
	}
	c.Render(http.StatusOK, render.HTML{Template: templates[name], Name: "layout", Data: v})
}

// public pages send a signed-in visitor straight to their landing page
func (h *PageHandler) public(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := middleware.CurrentUser(c); ok {
			c.Redirect(http.StatusFound, authz.LandingPage(id.Role))
			return
		}
		h.render(c, name, title, nil)
	}
}

func (h *PageHandler) dashboard(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, authz.LandingPage(id.Role))
}

func (h *PageHandler) restricted(name, title string, capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		if authz.Check(id, capability) == authz.Deny {
			c.Redirect(http.StatusFound, authz.LandingPage(id.Role))
			return
		}
		h.render(c, name, title, id)
	}
}

func (h *PageHandler) identity(c *gin.Context) (*model.Identity, bool) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, h.loginPath)
		return nil, false
	}
	return id, true
}
