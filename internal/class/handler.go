package class

import (
	"github.com/gin-gonic/gin"

	"pack/internal/dto"
	"pack/internal/middleware"
)

type ClassHandler struct {
	service *ClassService
}

// list
// @Summary List classes
// @Description Teachers get the classes they own, students the classes they joined
// @Tags classes
// @Produce json
// @Success 200 {object} dto.Response{data=[]Summary}
// @Failure 401 {object} dto.ErrorBody
// @Router /classes [get]
func (h *ClassHandler) list(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	out, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, out)
}

// create
// @Summary Create class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body CreateClassRequest true "Class"
// @Success 200 {object} dto.Response{data=Summary}
// @Failure 400 {object} dto.ErrorBody
// @Failure 403 {object} dto.ErrorBody
// @Router /classes [post]
func (h *ClassHandler) create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	out, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, out)
}

// join
// @Summary Join class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body JoinClassRequest true "Join code"
// @Success 200 {object} dto.Response{data=Summary}
// @Failure 403 {object} dto.ErrorBody
// @Failure 404 {object} dto.ErrorBody
// @Failure 409 {object} dto.ErrorBody
// @Router /classes/join [post]
func (h *ClassHandler) join(c *gin.Context) {
	var req JoinClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c)
		return
	}
	id, _ := middleware.CurrentUser(c)

	out, err := h.service.Join(c.Request.Context(), id, req.JoinCode)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, out)
}
