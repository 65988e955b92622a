package logout

import (
	"github.com/gin-gonic/gin"

	"pack/internal/session"
)

// RegisterRoutes needs no auth middleware; logging out without a session
// still clears the cookie.
func RegisterRoutes(r *gin.RouterGroup, sessions TokenDeleter, cookie session.CookieConfig) {
	handler := &LogoutHandler{sessions: sessions, cookie: cookie}
	r.POST("/logout", handler.Logout)
}
