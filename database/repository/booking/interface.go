package bookingRepo

import (
	"time"

	"homeserve/models"
)

// BookingRepository defines data access methods for booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByCustomer(customerID string) ([]models.Booking, error)
	UpdateStatus(id, status string) error
	// ListStalePending returns pending bookings created before the cutoff.
	ListStalePending(cutoff time.Time) ([]models.Booking, error)
}
