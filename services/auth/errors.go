package auth

import "errors"

// Flow errors. Each maps to a distinct user-facing message; invalid code,
// expired challenge and too-many-attempts all leave the flow in the OTP
// state so the user can retry or resend.
var (
	ErrInvalidPhone     = errors.New("please enter a valid phone number with country code (e.g., +1234567890)")
	ErrMissingCode      = errors.New("please enter the OTP")
	ErrInvalidCode      = errors.New("invalid OTP, please check and try again")
	ErrChallengeExpired = errors.New("OTP not found or expired, please request a new code")
	ErrTooManyAttempts  = errors.New("too many attempts, please wait a moment before trying again")
	ErrSessionNotFound  = errors.New("no OTP request found, please request OTP again")
	ErrNotVerified      = errors.New("phone number has not been verified")
	ErrNameRequired     = errors.New("please enter your full name")
)
