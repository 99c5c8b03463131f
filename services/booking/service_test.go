package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "homeserve/database/repository/booking"
	"homeserve/models"
	"homeserve/services/coupon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*DefaultBookingService, *bookingRepo.MemoryBookingRepo) {
	repo := bookingRepo.NewMemoryBookingRepo()
	return &DefaultBookingService{Repo: repo}, repo
}

func validInput() models.BookingInput {
	return models.BookingInput{
		CustomerID:    "cust-1",
		Service:       "House Cleaning",
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:00",
		Address:       "12 Elm Street",
		TotalPrice:    150,
		FinalAmount:   155,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a complete payload and echoes price fields", func(t *testing.T) {
		svc, repo := newTestService()
		b, err := svc.Create(ctx, validInput())
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, "cust-1", b.CustomerID)
		assert.Equal(t, models.BookingStatusPending, b.Status)
		assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
		assert.Equal(t, 150.0, b.TotalPrice)
		assert.Equal(t, 155.0, b.FinalAmount)
		assert.Equal(t, "Single Service", b.ServiceType)
		assert.Equal(t, []string{"House Cleaning"}, b.Services)
		assert.Equal(t, "Home Services", b.ProviderName)
		assert.False(t, b.CreatedAt.IsZero())

		stored, err := repo.GetByID(b.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("rejects payloads missing a required field", func(t *testing.T) {
		svc, _ := newTestService()
		mutations := []func(*models.BookingInput){
			func(in *models.BookingInput) { in.Service = "" },
			func(in *models.BookingInput) { in.ScheduledDate = "" },
			func(in *models.BookingInput) { in.ScheduledTime = "" },
			func(in *models.BookingInput) { in.Address = "" },
			func(in *models.BookingInput) { in.TotalPrice = 0 },
		}
		for i, mutate := range mutations {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrMissingFields, "mutation %d", i)
		}
	})

	t.Run("fabricates a guest customer id when absent", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.CustomerID = ""
		b, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Contains(t, b.CustomerID, "guest_")
	})

	t.Run("final amount defaults to total price", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.FinalAmount = 0
		b, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in.TotalPrice, b.FinalAmount)
	})
}

func TestCreateBookingPriceVerification(t *testing.T) {
	ctx := context.Background()
	items := []models.ServiceLine{{Name: "House Cleaning", Price: 100, Quantity: 1}}

	t.Run("verified standard price is accepted with a breakdown", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.Items = items
		in.TotalPrice = 100
		in.FinalAmount = 105 // 100 + 5 delivery
		b, err := svc.Create(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, b.ChargesBreakdown)
		assert.Equal(t, 100.0, b.ChargesBreakdown.BasePrice)
		assert.Equal(t, 105.0, b.ChargesBreakdown.FinalAmount)
	})

	t.Run("coupon discount is recomputed server-side", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.Items = items
		in.CouponCode = "first10"
		in.TotalPrice = 100
		in.FinalAmount = 95 // 100 + 5 - 10
		b, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 10.0, b.ChargesBreakdown.Discount)
	})

	t.Run("unknown coupon is rejected", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.Items = items
		in.CouponCode = "SAVE99"
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, coupon.ErrInvalidCode)
	})

	t.Run("mismatched totals are rejected", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.Items = items
		in.TotalPrice = 100
		in.FinalAmount = 42
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrPriceMismatch)
	})

	t.Run("bundle schedule applies to multiple services", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.ServiceType = "Multiple Services"
		in.Items = items
		in.TotalPrice = 100
		in.FinalAmount = 123.2 // 100 + 10 fee + 13.2 tax
		b, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 10.0, b.ChargesBreakdown.ServiceFee)
		assert.Equal(t, 13.2, b.ChargesBreakdown.TaxAmount)
	})

	t.Run("tolerates one cent of float noise", func(t *testing.T) {
		svc, _ := newTestService()
		in := validInput()
		in.Items = items
		in.TotalPrice = 100
		in.FinalAmount = 105.005
		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})
}

func TestListByCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Service = "Plumbing Repair"
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	bookings, err := svc.ListByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	other, err := svc.ListByCustomer(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)

	_ = first
}

func TestExpireStale(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	old := &models.Booking{
		ID:         "booking_old",
		CustomerID: "cust-1",
		Service:    "House Cleaning",
		Status:     models.BookingStatusPending,
		CreatedAt:  time.Now().Add(-72 * time.Hour),
	}
	require.NoError(t, repo.Create(old))

	fresh, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	count, err := svc.ExpireStale(ctx, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expired, err := repo.GetByID("booking_old")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusExpired, expired.Status)

	kept, err := repo.GetByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, kept.Status)
}
