package routes

import (
	"net/http"
	"time"

	"homeserve/config"
	userRepo "homeserve/database/repository/user"
	"homeserve/handlers"
	"homeserve/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and repositories the router wires up.
type HandlerBundle struct {
	Auth     *handlers.AuthHandler
	OTP      *handlers.OTPHandler
	Booking  *handlers.BookingHandler
	UserRepo userRepo.UserRepository

	// Database label reported by /health.
	Database string
}

// corsConfig restricts origins to the local development hosts plus the
// configured frontend URL.
func corsConfig() cors.Config {
	origins := []string{
		"http://localhost:8080",
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if config.AppConfig.FrontendURL != "" {
		origins = append(origins, config.AppConfig.FrontendURL)
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// RegisterAuthRoutes registers authentication endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *HandlerBundle) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hb.Auth.Register)
		authGroup.POST("/login", hb.Auth.Login)
		authGroup.POST("/check-phone", hb.Auth.CheckPhone)
		authGroup.POST("/register-phone", hb.Auth.RegisterPhone)

		authGroup.POST("/otp/send", hb.OTP.Send)
		authGroup.POST("/otp/verify", hb.OTP.Verify)
		authGroup.POST("/otp/resend", hb.OTP.Resend)
		authGroup.POST("/otp/complete", hb.OTP.CompleteProfile)
		authGroup.DELETE("/otp/:sessionID", hb.OTP.Cancel)

		// Protected routes (require authentication).
		authGroup.GET("/me", middleware.JWTAuthMiddleware(hb.UserRepo), hb.Auth.Me)
	}
}

// RegisterBookingRoutes registers booking endpoints. Authentication is
// optional; a valid session overrides the payload's customer identity.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *HandlerBundle) {
	bookingGroup := api.Group("/bookings")
	{
		bookingGroup.Use(middleware.OptionalAuthMiddleware(hb.UserRepo))
		bookingGroup.POST("", hb.Booking.Create)
		bookingGroup.GET("/customer/:customerId", hb.Booking.ListByCustomer)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(corsConfig()))

	r.GET("/", handlers.RootHandler)
	r.GET("/health", handlers.HealthHandler(hb.Database))

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())
	api.GET("/test", handlers.APITestHandler)

	RegisterAuthRoutes(api, hb)
	RegisterBookingRoutes(api, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Endpoint not found",
			"path":      c.Request.URL.Path,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
