// Package booking creates and lists booking records.
//
// Price verification: when the payload carries the structured service
// selection, the server recomputes the breakdown and rejects totals that
// disagree with the client's. Payloads without line items are accepted
// with their price fields echoed unchanged, but flagged in the logs.
package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	bookingRepo "homeserve/database/repository/booking"
	"homeserve/models"
	"homeserve/services/coupon"
	"homeserve/services/pricing"
	"homeserve/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// priceTolerance absorbs client-side float noise when comparing recomputed
// totals against submitted ones.
const priceTolerance = 0.01

// dedupTTL is the window within which an identical submission is rejected.
const dedupTTL = 30 * time.Second

const (
	serviceTypeSingle   = "Single Service"
	serviceTypeMultiple = "Multiple Services"
)

// DefaultBookingService is the standard BookingService implementation.
// Cache is optional; when nil, duplicate-submission protection is skipped.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// Create validates the payload, verifies the price breakdown where
// possible, and persists a new pending booking.
func (s *DefaultBookingService) Create(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	if input.Service == "" || input.ScheduledDate == "" || input.ScheduledTime == "" ||
		input.Address == "" || input.TotalPrice == 0 {
		return nil, ErrMissingFields
	}

	customerID := input.CustomerID
	if customerID == "" {
		// Guest checkout keeps working; the record still gets a stable owner.
		customerID = "guest_" + uuid.New().String()
	}

	breakdown, err := s.verifyPrice(input)
	if err != nil {
		return nil, err
	}

	if err := s.guardDuplicate(ctx, customerID, input); err != nil {
		return nil, err
	}

	serviceType := input.ServiceType
	if serviceType == "" {
		serviceType = serviceTypeSingle
	}
	services := input.Services
	if len(services) == 0 {
		services = []string{input.Service}
	}
	providerName := input.ProviderName
	if providerName == "" {
		providerName = "Home Services"
	}

	now := time.Now()
	booking := &models.Booking{
		ID:                "booking_" + uuid.New().String(),
		CustomerID:        customerID,
		Service:           input.Service,
		ServiceType:       serviceType,
		Services:          services,
		ScheduledDate:     input.ScheduledDate,
		ScheduledTime:     input.ScheduledTime,
		ProviderName:      providerName,
		Address:           input.Address,
		Coordinates:       input.Coordinates,
		AdditionalDetails: input.AdditionalDetails,
		TotalPrice:        input.TotalPrice,
		FinalAmount:       input.FinalAmount,
		ChargesBreakdown:  breakdown,
		Status:            models.BookingStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if booking.FinalAmount == 0 {
		booking.FinalAmount = booking.TotalPrice
	}

	if err := s.Repo.Create(booking); err != nil {
		s.logger().Error("Failed to persist booking", zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger().Info("Booking created",
		zap.String("id", booking.ID),
		zap.String("customer", booking.CustomerID),
		zap.Float64("final_amount", booking.FinalAmount))
	return booking, nil
}

// verifyPrice recomputes the breakdown from the structured selection and
// compares it against the submitted totals. Returns the charges to store
// on the record, or nil when the payload carries no line items.
func (s *DefaultBookingService) verifyPrice(input models.BookingInput) (*models.ChargesBreakdown, error) {
	if len(input.Items) == 0 {
		s.logger().Warn("Booking submitted without line items, price not verifiable",
			zap.Float64("total_price", input.TotalPrice))
		return nil, nil
	}

	var breakdown pricing.Breakdown
	if input.CouponCode != "" {
		c, err := coupon.Lookup(input.CouponCode)
		if err != nil {
			return nil, err
		}
		breakdown = pricing.ComputeStandard(input.Items, c)
	} else if input.ServiceType == serviceTypeMultiple {
		breakdown = pricing.ComputeBundle(input.Items)
	} else {
		breakdown = pricing.ComputeStandard(input.Items, nil)
	}

	if _, usedFallback := pricing.BasePrice(input.Items); usedFallback {
		s.logger().Warn("Line item without price, fallback unit price applied",
			zap.Float64("fallback", pricing.FallbackUnitPrice))
	}

	if math.Abs(breakdown.FinalAmount-input.FinalAmount) > priceTolerance {
		s.logger().Warn("Rejecting booking with mismatched price",
			zap.Float64("submitted", input.FinalAmount),
			zap.Float64("computed", breakdown.FinalAmount))
		return nil, ErrPriceMismatch
	}
	return breakdown.ToCharges(), nil
}

// guardDuplicate rejects an identical submission within the dedup window.
func (s *DefaultBookingService) guardDuplicate(ctx context.Context, customerID string, input models.BookingInput) error {
	if s.Cache == nil {
		return nil
	}
	sum := sha256.Sum256([]byte(strings.Join([]string{
		customerID, input.Service, input.ScheduledDate, input.ScheduledTime, input.Address,
	}, "|")))
	key := "bookingDedup:" + hex.EncodeToString(sum[:])

	ok, err := s.Cache.SetNX(ctx, key, 1, dedupTTL).Result()
	if err != nil {
		// The cache is best-effort; never block a booking on it.
		s.logger().Warn("Dedup cache unavailable", zap.Error(err))
		return nil
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

// ListByCustomer returns the customer's bookings, newest first.
func (s *DefaultBookingService) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByCustomer(customerID)
	if err != nil {
		s.logger().Error("Failed to list bookings", zap.Error(err), zap.String("customer", customerID))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ExpireStale marks pending bookings created before the cutoff as expired
// and returns the number updated.
func (s *DefaultBookingService) ExpireStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := s.Repo.ListStalePending(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale bookings: %w", err)
	}

	expired := 0
	for _, b := range stale {
		if err := s.Repo.UpdateStatus(b.ID, models.BookingStatusExpired); err != nil {
			s.logger().Error("Failed to expire booking", zap.Error(err), zap.String("id", b.ID))
			continue
		}
		expired++
	}
	if expired > 0 {
		s.logger().Info("Expired stale pending bookings", zap.Int("count", expired))
	}
	return expired, nil
}
