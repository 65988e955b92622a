package login

import (
	"github.com/gin-gonic/gin"

	"pack/internal/authz"
	"pack/internal/dto"
	"pack/internal/session"
)

type Handler struct {
	service *Service
	cookie  session.CookieConfig
}

// handle signs a user in
// @Summary Sign in
// @Description Checks username and password, replaces any earlier session and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=LoginResponse}
// @Failure 400 {object} dto.ErrorBody
// @Failure 401 {object} dto.ErrorBody "Invalid credentials"
// @Failure 500 {object} dto.ErrorBody
// @Router /login [post]
func (h *Handler) handle(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}

	sess, identity, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	session.SetCookie(c, h.cookie, sess.Token)
	dto.SuccessResponse(c, LoginResponse{
		User:        identity,
		RedirectUrl: authz.LandingPage(identity.Role),
	})
}
