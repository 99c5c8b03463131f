// Package cron runs periodic background maintenance.
package cron

import (
	"context"
	"time"

	"homeserve/config"
	"homeserve/services/booking"
	"homeserve/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FlowPurger reclaims expired auth-flow state. Redis expires its own
// keys; the in-memory store needs a periodic sweep.
type FlowPurger interface {
	PurgeExpired()
}

// StartBookingSweeper schedules the job that expires stale pending
// bookings and, when a purger is supplied, sweeps abandoned auth flows.
// Returns the scheduler so callers can stop it on shutdown.
func StartBookingSweeper(svc *booking.DefaultBookingService, purger FlowPurger) *cron.Cron {
	logger := utils.GetLogger()

	ttlHours := config.AppConfig.PendingBookingTTLHours
	if ttlHours <= 0 {
		ttlHours = 48
	}
	ttl := time.Duration(ttlHours) * time.Hour

	c := cron.New()
	_, err := c.AddFunc("@every 15m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := svc.ExpireStale(ctx, ttl); err != nil {
			logger.Error("Booking sweep failed", zap.Error(err))
		}
		if purger != nil {
			purger.PurgeExpired()
		}
	})
	if err != nil {
		logger.Error("Failed to schedule booking sweeper", zap.Error(err))
		return c
	}

	c.Start()
	logger.Sugar().Infof("Booking sweeper started (pending TTL %s)", ttl)
	return c
}
