package logout

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pack/internal/dto"
	"pack/internal/session"
)

type TokenDeleter interface {
	DeleteByToken(ctx context.Context, token string) error
}

type LogoutHandler struct {
	sessions TokenDeleter
	cookie   session.CookieConfig
}

// Logout ends the current session
// @Summary Sign out
// @Description Deletes the session behind the cookie, if any, and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Router /logout [post]
func (h *LogoutHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.sessions.DeleteByToken(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Warn("delete session on logout failed")
		}
	}

	session.ClearCookie(c, h.cookie)
	dto.SuccessResponse(c, nil)
}
