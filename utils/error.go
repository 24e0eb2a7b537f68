package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler recovers panics raised further down the chain and answers with a JSON 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.FullPath()),
					zap.String("method", c.Request.Method),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response and stops the handler chain.
func JSONError(c *gin.Context, status int, message string, details string) {
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, zap.String("details", details))
	} else {
		GetLogger().Warn(message, zap.String("details", details))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
