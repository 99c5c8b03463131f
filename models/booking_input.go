package models

// BookingInput is the payload accepted by POST /api/bookings.
//
// Items carries the structured service selection so the server can recompute
// the price breakdown and verify the submitted totals. Legacy clients that
// only send the display fields (Service, Services) are accepted but their
// totals cannot be verified.
type BookingInput struct {
	CustomerID        string        `json:"customer_id"`
	Service           string        `json:"service"`
	ServiceType       string        `json:"service_type"`
	Services          []string      `json:"services"`
	Items             []ServiceLine `json:"items"`
	CouponCode        string        `json:"coupon_code"`
	ScheduledDate     string        `json:"scheduled_date"`
	ScheduledTime     string        `json:"scheduled_time"`
	ProviderName      string        `json:"provider_name"`
	Address           string        `json:"address"`
	Coordinates       *GeoPoint     `json:"coordinates"`
	AdditionalDetails string        `json:"additional_details"`
	TotalPrice        float64       `json:"total_price"`
	FinalAmount       float64       `json:"final_amount"`
}
