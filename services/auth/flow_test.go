package auth

import (
	"context"
	"regexp"
	"testing"

	userRepo "homeserve/database/repository/user"
	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeRegex = regexp.MustCompile(`\d{6}`)

// captureSender records outgoing messages so tests can read the OTP.
type captureSender struct {
	phones []string
	codes  []string
}

func (s *captureSender) Send(phone, message string) error {
	s.phones = append(s.phones, phone)
	s.codes = append(s.codes, codeRegex.FindString(message))
	return nil
}

func (s *captureSender) lastCode() string {
	return s.codes[len(s.codes)-1]
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func newTestFlow(repo userRepo.UserRepository) (*PhoneAuthService, *captureSender) {
	sender := &captureSender{}
	svc := &PhoneAuthService{
		Repo:               repo,
		Store:              NewMemoryFlowStore(),
		SMS:                sender,
		DefaultCountryCode: "+1",
		MaxAttempts:        3,
	}
	return svc, sender
}

func TestFlowNewUser(t *testing.T) {
	ctx := context.Background()
	repo := userRepo.NewMemoryUserRepo()
	svc, sender := newTestFlow(repo)

	start, err := svc.Start(ctx, "2025550123")
	require.NoError(t, err)
	assert.Equal(t, "+12025550123", start.Phone)
	require.Len(t, sender.codes, 1)
	require.Len(t, sender.lastCode(), 6)

	// Wrong code keeps the flow in the OTP state for retry.
	_, err = svc.Verify(ctx, start.SessionID, wrongCode(sender.lastCode()))
	assert.ErrorIs(t, err, ErrInvalidCode)

	// Correct code advances to profile collection for an unknown number.
	result, err := svc.Verify(ctx, start.SessionID, sender.lastCode())
	require.NoError(t, err)
	assert.True(t, result.NeedsProfile)
	assert.Nil(t, result.User)

	// Completing the profile creates the user and issues a token.
	done, err := svc.CompleteProfile(ctx, start.SessionID, "Jane Roe", "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, done.User)
	assert.False(t, done.NeedsProfile)
	assert.NotEmpty(t, done.Token)
	assert.Equal(t, "Jane Roe", done.User.FullName)
	assert.Equal(t, "+12025550123", done.User.Phone)
	assert.True(t, done.User.PhoneVerified)
	assert.Equal(t, "customer", done.User.UserType)

	stored, err := repo.GetByPhone("+12025550123")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.TokenHash)

	// All flow state has been released; the session cannot complete twice.
	_, err = svc.CompleteProfile(ctx, start.SessionID, "Jane Roe", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFlowExistingUserLogsInDirectly(t *testing.T) {
	ctx := context.Background()
	repo := userRepo.NewMemoryUserRepo()
	require.NoError(t, repo.Create(&models.User{
		ID:            "u1",
		Phone:         "+12025550123",
		FullName:      "John Doe",
		UserType:      "customer",
		PhoneVerified: true,
	}))
	svc, sender := newTestFlow(repo)

	start, err := svc.Start(ctx, "+12025550123")
	require.NoError(t, err)

	result, err := svc.Verify(ctx, start.SessionID, sender.lastCode())
	require.NoError(t, err)
	assert.False(t, result.NeedsProfile)
	require.NotNil(t, result.User)
	assert.Equal(t, "John Doe", result.User.FullName)
	assert.NotEmpty(t, result.Token)

	// Session was closed on login.
	_, err = svc.Verify(ctx, start.SessionID, sender.lastCode())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFlowResendReplacesChallenge(t *testing.T) {
	ctx := context.Background()
	svc, sender := newTestFlow(userRepo.NewMemoryUserRepo())

	start, err := svc.Start(ctx, "2025550123")
	require.NoError(t, err)
	first := sender.lastCode()

	require.NoError(t, svc.Resend(ctx, start.SessionID))
	second := sender.lastCode()
	assert.Len(t, sender.codes, 2)
	assert.Equal(t, "+12025550123", sender.phones[1])

	if first != second {
		_, err = svc.Verify(ctx, start.SessionID, first)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	result, err := svc.Verify(ctx, start.SessionID, second)
	require.NoError(t, err)
	assert.True(t, result.NeedsProfile)
}

func TestFlowAttemptLimit(t *testing.T) {
	ctx := context.Background()
	svc, sender := newTestFlow(userRepo.NewMemoryUserRepo())

	start, err := svc.Start(ctx, "2025550123")
	require.NoError(t, err)
	bad := wrongCode(sender.lastCode())

	_, err = svc.Verify(ctx, start.SessionID, bad)
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = svc.Verify(ctx, start.SessionID, bad)
	assert.ErrorIs(t, err, ErrInvalidCode)

	// Third failure invalidates the challenge.
	_, err = svc.Verify(ctx, start.SessionID, bad)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// Even the correct code is now rejected until a resend.
	_, err = svc.Verify(ctx, start.SessionID, sender.lastCode())
	assert.ErrorIs(t, err, ErrChallengeExpired)

	require.NoError(t, svc.Resend(ctx, start.SessionID))
	result, err := svc.Verify(ctx, start.SessionID, sender.lastCode())
	require.NoError(t, err)
	assert.True(t, result.NeedsProfile)
}

func TestFlowCancelDiscardsState(t *testing.T) {
	ctx := context.Background()
	svc, sender := newTestFlow(userRepo.NewMemoryUserRepo())

	start, err := svc.Start(ctx, "2025550123")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, start.SessionID))

	_, err = svc.Verify(ctx, start.SessionID, sender.lastCode())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFlowValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestFlow(userRepo.NewMemoryUserRepo())

	_, err := svc.Start(ctx, "not a phone")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.Verify(ctx, "missing-session", "123456")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Verify(ctx, "missing-session", "")
	assert.ErrorIs(t, err, ErrMissingCode)

	err = svc.Resend(ctx, "missing-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	start, err := svc.Start(ctx, "2025550123")
	require.NoError(t, err)

	// Profile completion requires a verified session and a name.
	_, err = svc.CompleteProfile(ctx, start.SessionID, "Jane Roe", "")
	assert.ErrorIs(t, err, ErrNotVerified)
	_, err = svc.CompleteProfile(ctx, start.SessionID, "", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}
