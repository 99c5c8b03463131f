package models

// Coupon entitles a percentage discount on the base service price.
type Coupon struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}
