package schoolwork

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pack/internal/dto"
	"pack/internal/middleware"
	"pack/pkg/response"
)

type SchoolworkHandler struct {
	service *SchoolworkService
}

// overview
// @Summary Schoolwork overview
// @Description The signed-in student's schoolwork grouped by urgency
// @Tags schoolwork
// @Produce json
// @Success 200 {object} dto.Response{data=Overview}
// @Failure 401 {object} dto.ErrorBody
// @Failure 403 {object} dto.ErrorBody
// @Router /schoolwork [get]
func (h *SchoolworkHandler) overview(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	out, err := h.service.Overview(c.Request.Context(), id.UserID)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, out)
}

// create
// @Summary Add schoolwork
// @Tags schoolwork
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Schoolwork"
// @Success 200 {object} dto.Response{data=Item}
// @Failure 400 {object} dto.ErrorBody
// @Router /schoolwork [post]
func (h *SchoolworkHandler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	out, err := h.service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, out)
}

// update
// @Summary Mark schoolwork done or not done
// @Tags schoolwork
// @Accept json
// @Produce json
// @Param id path int true "Schoolwork ID"
// @Param request body UpdateRequest true "Completion"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorBody
// @Router /schoolwork/{id} [patch]
func (h *SchoolworkHandler) update(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	if err := h.service.SetCompleted(c.Request.Context(), id.UserID, itemID, *req.Completed); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}

// remove
// @Summary Delete schoolwork
// @Tags schoolwork
// @Produce json
// @Param id path int true "Schoolwork ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorBody
// @Router /schoolwork/{id} [delete]
func (h *SchoolworkHandler) remove(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	id, _ := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), id.UserID, itemID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}

func pathID(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		dto.ErrorResponse(c, response.NotFound(msgNotFound))
		return 0, false
	}
	return n, true
}
