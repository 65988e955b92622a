package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	res "pack/pkg/response"
)

// Response is the success envelope, documented for swagger.
type Response struct {
	Code    int    `json:"code" example:"100"`
	Message string `json:"message" example:"success"`
	Data    any    `json:"data,omitempty"`
}

// ErrorBody is the failure envelope, documented for swagger.
type ErrorBody struct {
	Code  int    `json:"code" example:"3"`
	Error string `json:"error" example:"User not signed in"`
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// ErrorResponse writes err with its mapped status. Internal causes go to the
// log, never to the client.
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	status := res.HTTPStatus(err.Code)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
	}
	c.JSON(status, res.ErrorResponse(err))
}

// AbortWithError is ErrorResponse for middleware.
func AbortWithError(c *gin.Context, err *res.BusinessError) {
	ErrorResponse(c, err)
	c.Abort()
}

// BadRequest is the shared reply for an unparseable body.
func BadRequest(c *gin.Context) {
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("Invalid request body"),
	))
}
