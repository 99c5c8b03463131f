package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusExpired   = "expired"

	PaymentStatusPending = "pending"
)

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// ChargesBreakdown is the itemized price computation attached to a booking.
type ChargesBreakdown struct {
	BasePrice      float64 `bson:"base_price" json:"base_price"`
	DeliveryCharge float64 `bson:"delivery_charge,omitempty" json:"delivery_charge,omitempty"`
	ServiceFee     float64 `bson:"service_fee,omitempty" json:"service_fee,omitempty"`
	TaxAmount      float64 `bson:"tax_amount,omitempty" json:"tax_amount,omitempty"`
	Discount       float64 `bson:"discount" json:"discount"`
	FinalAmount    float64 `bson:"final_amount" json:"final_amount"`
}

// Booking represents a confirmed booking record.
type Booking struct {
	ID                string            `bson:"id" json:"id"`
	CustomerID        string            `bson:"customer_id" json:"customer_id"`
	Service           string            `bson:"service" json:"service"`
	ServiceType       string            `bson:"service_type" json:"service_type"` // "Single Service" or "Multiple Services"
	Services          []string          `bson:"services" json:"services"`
	ScheduledDate     string            `bson:"scheduled_date" json:"scheduled_date"` // "YYYY-MM-DD"
	ScheduledTime     string            `bson:"scheduled_time" json:"scheduled_time"` // "HH:MM"
	ProviderName      string            `bson:"provider_name" json:"provider_name"`
	Address           string            `bson:"address" json:"address"`
	Coordinates       *GeoPoint         `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	AdditionalDetails string            `bson:"additional_details,omitempty" json:"additional_details,omitempty"`
	TotalPrice        float64           `bson:"total_price" json:"total_price"`
	FinalAmount       float64           `bson:"final_amount" json:"final_amount"`
	ChargesBreakdown  *ChargesBreakdown `bson:"charges_breakdown,omitempty" json:"charges_breakdown,omitempty"`
	Status            string            `bson:"status" json:"status"`
	PaymentStatus     string            `bson:"payment_status" json:"payment_status"`
	CreatedAt         time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `bson:"updated_at" json:"updated_at"`
}
