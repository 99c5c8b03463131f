package handlers

import (
	"net/http"
	"time"

	"homeserve/config"

	"github.com/gin-gonic/gin"
)

// Version reported by the health and meta endpoints.
const Version = "1.0.0"

var startTime = time.Now()

// HealthHandler reports service status. It always returns 200 regardless of
// datastore connectivity; the "database" field names the active backend.
func HealthHandler(database string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startTime).Seconds(),
			"environment": config.GetEnv(),
			"message":     "Home Services Backend API",
			"version":     Version,
			"database":    database,
		})
	}
}
