package settings

import (
	"github.com/gin-gonic/gin"

	"pack/internal/dto"
	"pack/internal/middleware"
	"pack/internal/session"
)

type SettingsHandler struct {
	service *Service
	cookie  session.CookieConfig
}

// sendEmailCode
// @Summary Send email change code
// @Tags settings
// @Accept json
// @Produce json
// @Param request body SendEmailCodeRequest true "New address"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorBody
// @Failure 401 {object} dto.ErrorBody
// @Failure 409 {object} dto.ErrorBody "Email already in use"
// @Failure 429 {object} dto.ErrorBody "Too many codes requested"
// @Router /settings/email/code [post]
func (h *SettingsHandler) sendEmailCode(c *gin.Context) {
	var req SendEmailCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	if err := h.service.SendEmailCode(c.Request.Context(), id, req.Email); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}

// changeEmail
// @Summary Change email
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ChangeEmailRequest true "New address and code"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorBody
// @Failure 401 {object} dto.ErrorBody
// @Failure 409 {object} dto.ErrorBody
// @Router /settings/email [put]
func (h *SettingsHandler) changeEmail(c *gin.Context) {
	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	if err := h.service.ChangeEmail(c.Request.Context(), id, req.Email, req.Code); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}

// changePassword
// @Summary Change password
// @Description Signs out every other device and refreshes the session cookie
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorBody
// @Failure 401 {object} dto.ErrorBody
// @Router /settings/password [put]
func (h *SettingsHandler) changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	sess, err := h.service.ChangePassword(c.Request.Context(), id, req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	session.SetCookie(c, h.cookie, sess.Token)
	dto.SuccessResponse(c, nil)
}

// setProgressEmails
// @Summary Weekly progress emails
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ProgressEmailsRequest true "Preference"
// @Success 200 {object} dto.Response{data=ProgressEmailsResponse}
// @Failure 401 {object} dto.ErrorBody
// @Failure 403 {object} dto.ErrorBody
// @Router /settings/progress-emails [put]
func (h *SettingsHandler) setProgressEmails(c *gin.Context) {
	var req ProgressEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	if err := h.service.SetProgressEmails(c.Request.Context(), id, *req.Enabled); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, ProgressEmailsResponse{Enabled: *req.Enabled})
}
