package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageBody is returned by endpoints that only acknowledge.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, code int, body interface{}) {
	c.JSON(code, body)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, details string) {
	c.JSON(code, ErrorBody{Error: message, Details: details})
}

// Abort sends an error response and stops the handler chain.
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}
