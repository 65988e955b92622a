package register

import (
	"github.com/gin-gonic/gin"

	"pack/internal/authz"
	"pack/internal/dto"
	"pack/internal/session"
)

type RegisterHandler struct {
	service *RegisterService
	cookie  session.CookieConfig
}

// handle creates an account and signs it in
// @Summary Sign up
// @Description Creates a user with its Student or Teacher profile and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "New account"
// @Success 200 {object} dto.Response{data=SignupResponse}
// @Failure 400 {object} dto.ErrorBody
// @Failure 409 {object} dto.ErrorBody "Username or email already in use"
// @Failure 500 {object} dto.ErrorBody
// @Router /signup [post]
func (h *RegisterHandler) handle(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}

	sess, identity, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	session.SetCookie(c, h.cookie, sess.Token)
	dto.SuccessResponse(c, SignupResponse{
		User:        identity,
		RedirectUrl: authz.LandingPage(identity.Role),
	})
}
