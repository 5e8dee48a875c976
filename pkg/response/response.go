package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/userkit/account-service/internal/domain/domainerr"
)

// APIResponse is the uniform envelope every endpoint writes.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a successful envelope with the given payload.
func Success[T any](c *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Fail writes a failure envelope with an explicit status.
func Fail(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// AbortFail writes a failure envelope and aborts the middleware chain.
func AbortFail(c *gin.Context, status int, message string, details interface{}) {
	Fail(c, status, message, details)
	c.Abort()
}

// FromError translates an error from the application layer. Business errors
// carry their own status and client-safe message; everything else becomes an
// opaque 500 so internals never leak to clients.
func FromError(c *gin.Context, err error) {
	if de := domainerr.As(err); de != nil {
		Fail(c, de.HTTPStatus, de.Message, gin.H{"code": de.Code})
		return
	}
	Fail(c, http.StatusInternalServerError, "internal server error", nil)
}
