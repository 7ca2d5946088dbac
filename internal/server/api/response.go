// Package api provides the read-only HTTP status surface.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details in API response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Success: true,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, types.ErrCodeInvalidRequest, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	Error(c, 500, types.ErrCodeInternalError, message)
}
