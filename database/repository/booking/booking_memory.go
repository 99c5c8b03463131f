package bookingRepo

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"homeserve/models"
)

// MemoryBookingRepo implements BookingRepository with an in-memory map. It
// backs standalone mode and tests.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking

	// SampleOnEmpty reproduces the demo behavior of standalone mode:
	// a customer with no stored bookings gets two fabricated sample
	// records instead of an empty list.
	SampleOnEmpty bool
}

// NewMemoryBookingRepo creates an empty in-memory booking repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *MemoryBookingRepo) clone(b *models.Booking) *models.Booking {
	cp := *b
	if b.Services != nil {
		cp.Services = append([]string(nil), b.Services...)
	}
	if b.ChargesBreakdown != nil {
		cb := *b.ChargesBreakdown
		cp.ChargesBreakdown = &cb
	}
	return &cp
}

// Create inserts a new booking record.
func (r *MemoryBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; ok {
		return fmt.Errorf("booking with id %s already exists", booking.ID)
	}
	r.bookings[booking.ID] = r.clone(booking)
	return nil
}

// GetByID retrieves a booking by ID. Returns nil when not found.
func (r *MemoryBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.bookings[id]; ok {
		return r.clone(b), nil
	}
	return nil, nil
}

// ListByCustomer returns the customer's bookings, newest first.
func (r *MemoryBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			bookings = append(bookings, *r.clone(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	if len(bookings) == 0 && r.SampleOnEmpty {
		return sampleBookings(customerID), nil
	}
	return bookings, nil
}

// UpdateStatus sets a booking's status and bumps its updated_at timestamp.
func (r *MemoryBookingRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

// ListStalePending returns pending bookings created before the cutoff.
func (r *MemoryBookingRepo) ListStalePending(cutoff time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			bookings = append(bookings, *r.clone(b))
		}
	}
	return bookings, nil
}

// sampleBookings fabricates the two demo records returned for customers
// with no booking history.
func sampleBookings(customerID string) []models.Booking {
	now := time.Now()
	return []models.Booking{
		{
			ID:            fmt.Sprintf("booking_%d", now.UnixMilli()),
			CustomerID:    customerID,
			Service:       "House Cleaning",
			ServiceType:   "Single Service",
			Services:      []string{"House Cleaning"},
			ScheduledDate: "2024-01-15",
			ScheduledTime: "10:00",
			ProviderName:  "Home Services",
			Status:        models.BookingStatusCompleted,
			PaymentStatus: models.PaymentStatusPending,
			TotalPrice:    150,
			FinalAmount:   150,
			CreatedAt:     now.Add(-24 * time.Hour),
			UpdatedAt:     now.Add(-24 * time.Hour),
		},
		{
			ID:            fmt.Sprintf("booking_%d", now.UnixMilli()+1),
			CustomerID:    customerID,
			Service:       "Plumbing Repair",
			ServiceType:   "Single Service",
			Services:      []string{"Plumbing Repair"},
			ScheduledDate: "2024-01-20",
			ScheduledTime: "14:00",
			ProviderName:  "Home Services",
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			TotalPrice:    200,
			FinalAmount:   200,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
