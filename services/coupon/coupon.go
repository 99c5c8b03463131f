// Package coupon manages discount code lookup and per-session application.
package coupon

import (
	"errors"
	"strings"
	"sync"

	"homeserve/models"
)

var (
	ErrMissingCode    = errors.New("please enter a coupon code")
	ErrInvalidCode    = errors.New("invalid coupon code")
	ErrAlreadyApplied = errors.New("a coupon is already applied, remove it first")
)

// registry holds the recognized coupon codes and their discount percentages.
var registry = map[string]float64{
	"FIRST10": 10,
}

// Lookup normalizes a code (trim, uppercase) and resolves it against the
// registry.
func Lookup(code string) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrMissingCode
	}
	pct, ok := registry[normalized]
	if !ok {
		return nil, ErrInvalidCode
	}
	return &models.Coupon{Code: normalized, DiscountPercent: pct}, nil
}

// Wallet tracks the coupon applied to a single booking session. At most one
// coupon may be active; applying a second requires removing the first.
type Wallet struct {
	mu      sync.Mutex
	applied *models.Coupon
}

// Apply validates and activates a coupon code.
func (w *Wallet) Apply(code string) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrMissingCode
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.applied != nil {
		return nil, ErrAlreadyApplied
	}

	c, err := Lookup(normalized)
	if err != nil {
		return nil, err
	}
	w.applied = c
	return c, nil
}

// Remove clears the applied coupon.
func (w *Wallet) Remove() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.applied = nil
}

// Applied returns the active coupon, or nil.
func (w *Wallet) Applied() *models.Coupon {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applied
}
