package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError lets services pick the HTTP status a failure maps to without
// importing gin. Payload, when set, is merged into the error body (used
// by order creation to return the unsaved draft on payment failure).
type APIError struct {
	Status  int
	Message string
	Payload map[string]any
}

func (e *APIError) Error() string { return e.Message }

func NewError(status int, msg string) *APIError {
	return &APIError{Status: status, Message: msg}
}

func OK(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusCreated, payload)
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg, "statusCode": status})
}

func BadRequest(c *gin.Context, msg string)   { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { Fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)     { Fail(c, http.StatusNotFound, msg) }
func ServerError(c *gin.Context, err error) {
	Fail(c, http.StatusInternalServerError, err.Error())
}

// FromError maps a service error onto the uniform envelope. Unknown
// error types become a 500.
func FromError(c *gin.Context, err error) {
	if apiErr, ok := err.(*APIError); ok {
		body := gin.H{"success": false, "message": apiErr.Message, "statusCode": apiErr.Status}
		for k, v := range apiErr.Payload {
			body[k] = v
		}
		c.JSON(apiErr.Status, body)
		return
	}
	ServerError(c, err)
}
