package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minoj/pkg/errors"
	"minoj/pkg/utils/logger"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Reason  string           `json:"reason"`
	Message string           `json:"message"`
}

// OK writes the resource as the raw response body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error translates an error into the protocol error body and logs it.
func Error(c *gin.Context, err error) {
	e := errors.GetError(err)
	write(c, e.Code.HTTPStatus(), e)
}

func write(c *gin.Context, status int, e *errors.Error) {
	logger.Warn(c.Request.Context(), "request failed",
		zap.Int("code", int(e.Code)),
		zap.String("reason", e.Code.Reason()),
		zap.String("message", e.Error()),
	)

	c.JSON(status, ErrorBody{
		Code:    e.Code,
		Reason:  e.Code.Reason(),
		Message: e.Error(),
	})
}

// ErrorWithCode writes an error body for the given code and message.
func ErrorWithCode(c *gin.Context, code errors.ErrorCode, message string) {
	Error(c, errors.Newf(code, "%s", message))
}

// BadRequest writes an ERR_INVALID_ARGUMENT response.
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, errors.InvalidArgument, message)
}

// NotFound writes an ERR_NOT_FOUND response.
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, errors.NotFound, message)
}

// MalformedID writes an ERR_NOT_FOUND body with a 400 status. Path ids that
// fail to parse are rejected this way, without a lookup.
func MalformedID(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, errors.Newf(errors.NotFound, "%s", message))
}
