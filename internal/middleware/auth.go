package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pack/internal/authz"
	"pack/internal/dto"
	"pack/internal/model"
	"pack/pkg/response"
)

const identityKey = "identity"

type IdentityResolver interface {
	FromRequest(r *http.Request) (*model.Identity, bool)
}

// RequireUser rejects API calls without a session with 401.
func RequireUser(r IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := r.FromRequest(c.Request)
		if !ok {
			dto.AbortWithError(c, response.NotAuthenticated())
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalUser stores the identity when there is one and never aborts.
func OptionalUser(r IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := r.FromRequest(c.Request); ok {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireRole must run after RequireUser.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	capability := authz.RoleIs(roles...)
	return func(c *gin.Context) {
		id, _ := CurrentUser(c)
		if authz.Check(id, capability) == authz.Deny {
			if id == nil {
				dto.AbortWithError(c, response.NotAuthenticated())
				return
			}
			dto.AbortWithError(c, response.Denied("Not available for your role"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity stored by RequireUser or OptionalUser.
func CurrentUser(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*model.Identity)
	return id, ok && id != nil
}
