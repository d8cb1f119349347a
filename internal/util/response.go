package util

import (
	"academic_portal_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paginated list results.
type PageResponse struct {
	List       interface{} `json:"list"`
	Pagination interface{} `json:"pagination"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// FromError is the single translation from the error taxonomy to transport
// status codes. Internal failures log the cause and return a generic body.
func FromError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	switch appErr.Kind {
	case KindValidation:
		Error(c, http.StatusBadRequest, appErr.Message)
	case KindUnauthorized:
		Error(c, http.StatusUnauthorized, appErr.Message)
	case KindForbidden:
		Error(c, http.StatusForbidden, appErr.Message)
	case KindNotFound:
		Error(c, http.StatusNotFound, appErr.Message)
	case KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	default:
		logger.Log.Error("internal server error",
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err))
		Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
