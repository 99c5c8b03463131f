// Package pricing computes booking price breakdowns.
//
// Two fee schedules exist: the standard schedule adds a flat delivery
// charge and honors a coupon discount; the bundle schedule adds a service
// fee and tax and grants an automatic volume discount above a subtotal
// threshold.
package pricing

import (
	"math"

	"homeserve/models"
)

const (
	// FallbackUnitPrice is substituted when a line item arrives without
	// a price. Kept for compatibility with existing clients; the booking
	// service logs a warning when it kicks in.
	FallbackUnitPrice = 80.0

	// DeliveryCharge is the flat delivery charge of the standard schedule.
	DeliveryCharge = 5.0

	// ServiceFeeRate and TaxRate apply in the bundle schedule. Tax
	// compounds on base plus fee.
	ServiceFeeRate = 0.10
	TaxRate        = 0.12

	// VolumeDiscountRate applies automatically in the bundle schedule
	// when the pre-discount subtotal exceeds VolumeDiscountThreshold.
	VolumeDiscountRate      = 0.05
	VolumeDiscountThreshold = 200.0
)

// Breakdown is the itemized computation summing to the final charged amount.
type Breakdown struct {
	BasePrice      float64 `json:"base_price"`
	DeliveryCharge float64 `json:"delivery_charge,omitempty"`
	ServiceFee     float64 `json:"service_fee,omitempty"`
	TaxAmount      float64 `json:"tax_amount,omitempty"`
	Discount       float64 `json:"discount"`
	FinalAmount    float64 `json:"final_amount"`
}

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BasePrice sums price times quantity over the selected services.
// Quantity defaults to 1; a zero price falls back to FallbackUnitPrice.
// It reports whether the fallback was used for any line.
func BasePrice(lines []models.ServiceLine) (total float64, usedFallback bool) {
	for _, l := range lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		price := l.Price
		if price == 0 {
			price = FallbackUnitPrice
			usedFallback = true
		}
		total += price * float64(qty)
	}
	return total, usedFallback
}

// ComputeStandard computes the standard-schedule breakdown: base price plus
// the flat delivery charge, minus a coupon percentage of the base price.
// A nil coupon means no discount.
func ComputeStandard(lines []models.ServiceLine, coupon *models.Coupon) Breakdown {
	base, _ := BasePrice(lines)
	discount := 0.0
	if coupon != nil {
		discount = Round2(base * coupon.DiscountPercent / 100)
	}
	return Breakdown{
		BasePrice:      base,
		DeliveryCharge: DeliveryCharge,
		Discount:       discount,
		FinalAmount:    Round2(base + DeliveryCharge - discount),
	}
}

// ComputeBundle computes the bundle-schedule breakdown: service fee on the
// base, tax on base plus fee, and an automatic volume discount when the
// pre-discount subtotal exceeds the threshold. No coupon applies.
func ComputeBundle(lines []models.ServiceLine) Breakdown {
	base, _ := BasePrice(lines)
	fee := base * ServiceFeeRate
	tax := (base + fee) * TaxRate
	subtotal := base + fee + tax

	discount := 0.0
	if subtotal > VolumeDiscountThreshold {
		discount = subtotal * VolumeDiscountRate
	}
	return Breakdown{
		BasePrice:   base,
		ServiceFee:  Round2(fee),
		TaxAmount:   Round2(tax),
		Discount:    Round2(discount),
		FinalAmount: Round2(subtotal - discount),
	}
}

// ToCharges converts a breakdown into the booking record representation.
func (b Breakdown) ToCharges() *models.ChargesBreakdown {
	return &models.ChargesBreakdown{
		BasePrice:      b.BasePrice,
		DeliveryCharge: b.DeliveryCharge,
		ServiceFee:     b.ServiceFee,
		TaxAmount:      b.TaxAmount,
		Discount:       b.Discount,
		FinalAmount:    b.FinalAmount,
	}
}
