package utils

import (
	"net/http"
	"time"

	"homeserve/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// ErrorHandler is a middleware to catch panics and return structured errors.
// In production the message is generic; in development the raw panic value
// is passed through.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				message := "Internal server error"
				if !config.IsProduction() {
					if e, ok := err.(error); ok {
						message = e.Error()
					}
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     message,
					Timestamp: time.Now().UTC(),
					Path:      c.Request.URL.Path,
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details), zap.String("path", c.Request.URL.Path))
	c.JSON(status, ErrorResponse{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}
