package models

import "time"

// User represents a customer account. Accounts are created either with an
// email and password or through the phone OTP flow.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FullName      string    `bson:"full_name" json:"full_name"`
	UserType      string    `bson:"user_type" json:"user_type"` // e.g. "customer"
	PhoneVerified bool      `bson:"phone_verified" json:"phone_verified"`
	Password      string    `bson:"-" json:"password,omitempty"` // incoming only, never stored
	PasswordHash  string    `bson:"password_hash,omitempty" json:"-"`
	TokenHash     string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
