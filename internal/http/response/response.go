package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope unified response structure, matching the backend wire format so
// the UI shell consumes one shape from either side.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 200 response with a message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error error response with an explicit status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}

// ErrorWithData error response carrying data, used for validation errors
func ErrorWithData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Data:    data,
	})
}

// BadRequest 400 response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 response carrying the login redirect signal for the UI
func Unauthorized(c *gin.Context, message string) {
	ErrorWithData(c, http.StatusUnauthorized, message, gin.H{"redirect": "/login"})
}

// NotFound 404 response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Upstream maps an upstream API failure onto the local surface
func Upstream(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}
