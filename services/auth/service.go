// Package auth implements the phone-OTP authentication flow.
//
// The flow advances through three states: phone entry, OTP verification,
// then profile completion for first-time users. At most one OTP challenge
// is outstanding per session; resending replaces the prior challenge.
package auth

import (
	"context"
	"fmt"
	"time"

	userRepo "homeserve/database/repository/user"
	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	challengeTTL = 5 * time.Minute
	sessionTTL   = 10 * time.Minute
	tokenTTL     = 24 * time.Hour

	otpLength = 6
)

// PhoneAuthService drives the phone-OTP flow against a user repository,
// a flow store and an SMS sender.
type PhoneAuthService struct {
	Repo               userRepo.UserRepository
	Store              FlowStore
	SMS                SMSSender
	DefaultCountryCode string
	MaxAttempts        int
}

// StartResult is returned when a challenge has been sent.
type StartResult struct {
	SessionID string `json:"session_id"`
	Phone     string `json:"phone"`
}

// VerifyResult is returned by Verify and CompleteProfile. When NeedsProfile
// is set the caller must collect a full name and call CompleteProfile;
// otherwise User and Token carry the established session.
type VerifyResult struct {
	NeedsProfile bool         `json:"needs_profile"`
	User         *models.User `json:"user,omitempty"`
	Token        string       `json:"token,omitempty"`
}

// Start formats and validates the phone number, opens an auth session and
// sends the first OTP challenge.
func (s *PhoneAuthService) Start(ctx context.Context, rawPhone string) (*StartResult, error) {
	phone, err := FormatPhone(rawPhone, s.DefaultCountryCode)
	if err != nil {
		return nil, err
	}

	session := Session{
		ID:        uuid.New().String(),
		Phone:     phone,
		Status:    SessionStatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.Store.SaveSession(ctx, session, sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to open auth session: %w", err)
	}

	if err := s.sendChallenge(ctx, session.ID, phone); err != nil {
		return nil, err
	}
	return &StartResult{SessionID: session.ID, Phone: phone}, nil
}

// sendChallenge generates a fresh OTP, stores it under the session and
// delivers it. Any prior challenge for the session is replaced.
func (s *PhoneAuthService) sendChallenge(ctx context.Context, sessionID, phone string) error {
	code, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	ch := Challenge{Phone: phone, Code: code}
	if err := s.Store.SaveChallenge(ctx, sessionID, ch, challengeTTL); err != nil {
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	message := fmt.Sprintf("Your Home Services verification code is %s. It expires in 5 minutes.", code)
	if err := s.SMS.Send(phone, message); err != nil {
		utils.GetLogger().Error("Failed to send OTP", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}
	return nil
}

// Resend invalidates the outstanding challenge and sends a new one to the
// same phone number.
func (s *PhoneAuthService) Resend(ctx context.Context, sessionID string) error {
	session, err := s.Store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if err := s.Store.DeleteChallenge(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to replace OTP challenge: %w", err)
	}
	return s.sendChallenge(ctx, sessionID, session.Phone)
}

// Verify checks the provided code against the outstanding challenge.
// A wrong code leaves the flow in the OTP state for retry; after
// MaxAttempts failures the challenge is invalidated. On success, an
// existing user with a name is logged in directly, otherwise the flow
// advances to profile completion.
func (s *PhoneAuthService) Verify(ctx context.Context, sessionID, code string) (*VerifyResult, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	session, err := s.Store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	ch, err := s.Store.GetChallenge(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChallengeExpired
	}

	if ch.Code != code {
		ch.Attempts++
		if ch.Attempts >= s.MaxAttempts {
			if err := s.Store.DeleteChallenge(ctx, sessionID); err != nil {
				utils.GetLogger().Error("Failed to invalidate OTP challenge", zap.Error(err))
			}
			return nil, ErrTooManyAttempts
		}
		if err := s.Store.SaveChallenge(ctx, sessionID, *ch, challengeTTL); err != nil {
			return nil, fmt.Errorf("failed to record OTP attempt: %w", err)
		}
		return nil, ErrInvalidCode
	}

	// Challenge consumed.
	if err := s.Store.DeleteChallenge(ctx, sessionID); err != nil {
		utils.GetLogger().Error("Failed to delete consumed OTP challenge", zap.Error(err))
	}

	user, err := s.Repo.GetByPhone(session.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil && user.FullName != "" {
		token, err := s.establish(user)
		if err != nil {
			return nil, err
		}
		if err := s.Store.DeleteSession(ctx, sessionID); err != nil {
			utils.GetLogger().Error("Failed to delete auth session", zap.Error(err))
		}
		return &VerifyResult{User: user, Token: token}, nil
	}

	session.Status = SessionStatusOTPVerified
	if err := s.Store.SaveSession(ctx, *session, sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to advance auth session: %w", err)
	}
	return &VerifyResult{NeedsProfile: true}, nil
}

// CompleteProfile creates or updates the user record for a verified session,
// issues a token and closes the session.
func (s *PhoneAuthService) CompleteProfile(ctx context.Context, sessionID, fullName, email string) (*VerifyResult, error) {
	if fullName == "" {
		return nil, ErrNameRequired
	}
	session, err := s.Store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != SessionStatusOTPVerified {
		return nil, ErrNotVerified
	}

	user, err := s.Repo.GetByPhone(session.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &models.User{
			ID:            uuid.New().String(),
			Phone:         session.Phone,
			FullName:      fullName,
			Email:         email,
			UserType:      "customer",
			PhoneVerified: true,
		}
		if err := s.Repo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		user.FullName = fullName
		if email != "" {
			user.Email = email
		}
		user.PhoneVerified = true
		if err := s.Repo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	token, err := s.establish(user)
	if err != nil {
		return nil, err
	}
	// Closing the session releases the challenge resource.
	if err := s.Store.DeleteSession(ctx, sessionID); err != nil {
		utils.GetLogger().Error("Failed to delete auth session", zap.Error(err))
	}
	return &VerifyResult{User: user, Token: token}, nil
}

// Cancel discards all in-progress flow state for the session.
func (s *PhoneAuthService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.Store.DeleteChallenge(ctx, sessionID); err != nil {
		return err
	}
	return s.Store.DeleteSession(ctx, sessionID)
}

// establish issues a JWT for the user and stores its hash on the record.
func (s *PhoneAuthService) establish(user *models.User) (string, error) {
	contact := user.Phone
	if contact == "" {
		contact = user.Email
	}
	token, err := utils.GenerateToken(user.ID, contact, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}
	user.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(user); err != nil {
		return "", fmt.Errorf("failed to persist auth token: %w", err)
	}
	return token, nil
}
