// Package response renders the JSON envelopes both services share.
package response

import (
	"github.com/gin-gonic/gin"
)

type ErrorEnvelope struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"Not found"`
}

// Error writes the failure envelope.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorEnvelope{Success: false, Error: status, Message: message})
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Success: false, Error: status, Message: message})
}

// OK writes payload with "success": true merged in.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}
