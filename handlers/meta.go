package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RootHandler serves the API banner.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "Home Services Backend API",
		"version":       Version,
		"documentation": "/api/test",
		"health":        "/health",
	})
}

// APITestHandler lists the available endpoints.
func APITestHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Home Services API is working!",
		"version": Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /api/test - API test",
			"POST /api/auth/register - User registration",
			"POST /api/auth/login - User login",
			"POST /api/auth/check-phone - Check phone registration",
			"POST /api/auth/register-phone - Register with verified phone",
			"POST /api/auth/otp/send - Send OTP challenge",
			"POST /api/auth/otp/verify - Verify OTP",
			"POST /api/auth/otp/resend - Resend OTP",
			"POST /api/bookings - Create booking",
			"GET /api/bookings/customer/:id - Get customer bookings",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
