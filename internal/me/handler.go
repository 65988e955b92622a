package me

import (
	"github.com/gin-gonic/gin"

	"pack/internal/dto"
	"pack/internal/middleware"
	"pack/pkg/response"
)

type MeHandler struct{}

// GetCurrentUser returns the signed-in identity
// @Summary Current user
// @Description Resolves the session cookie to the signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=UserInfoResponse}
// @Failure 401 {object} dto.ErrorBody "User not signed in"
// @Router /user [get]
func (h *MeHandler) GetCurrentUser(c *gin.Context) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		dto.ErrorResponse(c, response.NotAuthenticated())
		return
	}
	dto.SuccessResponse(c, id)
}
