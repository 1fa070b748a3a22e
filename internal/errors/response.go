package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // stable code (codes.go)
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes a structured error response.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Respond translates a service error into the matching HTTP response:
// InvalidInput -> 400, NotFound -> 404, everything else -> 500.
func Respond(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindInvalidInput:
		RespondWithError(c, http.StatusBadRequest, CodeOf(err), err.Error())
	case KindNotFound:
		RespondWithError(c, http.StatusNotFound, CodeOf(err), err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, InternalServerError, "internal server error")
	}
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
