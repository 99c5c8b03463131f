package booking

import "errors"

var (
	// ErrMissingFields is returned when a required field is absent from
	// the booking payload.
	ErrMissingFields = errors.New("missing required fields")

	// ErrPriceMismatch is returned when the submitted totals do not match
	// the server-side recomputation of the price breakdown.
	ErrPriceMismatch = errors.New("submitted price does not match the computed breakdown")

	// ErrDuplicate is returned when an identical booking was submitted
	// moments earlier.
	ErrDuplicate = errors.New("a matching booking was just submitted, please wait a moment")
)
