// File: homeserve/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeserve/config"
	"homeserve/cron"
	"homeserve/database"
	bookingRepoPkg "homeserve/database/repository/booking"
	userRepoPkg "homeserve/database/repository/user"
	"homeserve/handlers"
	"homeserve/routes"
	"homeserve/services/auth"
	"homeserve/services/booking"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Wire the storage layer. Standalone mode runs without MongoDB or
	// Redis; everything falls back to in-memory implementations.
	var (
		userRepo      userRepoPkg.UserRepository
		bkRepo        bookingRepoPkg.BookingRepository
		flowStore     auth.FlowStore
		cacheClient   *redis.Client
		databaseLabel string
	)
	var flowPurger cron.FlowPurger
	if config.AppConfig.Standalone {
		logger.Sugar().Info("main: running in standalone mode (no MongoDB/Redis required)")
		userRepo = userRepoPkg.NewSeededMemoryUserRepo()
		memBookings := bookingRepoPkg.NewMemoryBookingRepo()
		memBookings.SampleOnEmpty = true
		bkRepo = memBookings
		memFlow := auth.NewMemoryFlowStore()
		flowStore = memFlow
		flowPurger = memFlow
		databaseLabel = "Mock/In-Memory"
	} else {
		database.InitDB()
		utils.InitRedis()
		userRepo = userRepoPkg.NewMongoUserRepo()
		bkRepo = bookingRepoPkg.NewMongoBookingRepo()
		flowStore = &auth.RedisFlowStore{
			Sessions:   utils.GetAuthCacheClient(),
			Challenges: utils.GetOTPCacheClient(),
		}
		cacheClient = utils.GetCacheClient()
		databaseLabel = "MongoDB"
	}

	// Services.
	userService := &user.DefaultUserService{Repo: userRepo}

	phoneAuthService := &auth.PhoneAuthService{
		Repo:               userRepo,
		Store:              flowStore,
		SMS:                auth.LogSMSSender{},
		DefaultCountryCode: config.AppConfig.DefaultCountryCode,
		MaxAttempts:        config.AppConfig.OTPMaxAttempts,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:   bkRepo,
		Cache:  cacheClient,
		Logger: logger,
	}

	// Handlers and routes.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &routes.HandlerBundle{
		Auth:     handlers.NewAuthHandler(userService, logger),
		OTP:      handlers.NewOTPHandler(phoneAuthService, logger),
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		UserRepo: userRepo,
		Database: databaseLabel,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background maintenance.
	sweeper := cron.StartBookingSweeper(bookingService, flowPurger)
	defer sweeper.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
