package handlers

import (
	"errors"
	"net/http"

	"homeserve/services/auth"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OTPHandler exposes the phone-OTP authentication flow.
type OTPHandler struct {
	Flow   *auth.PhoneAuthService
	Logger *zap.Logger
}

// NewOTPHandler creates an OTPHandler.
func NewOTPHandler(flow *auth.PhoneAuthService, logger *zap.Logger) *OTPHandler {
	return &OTPHandler{Flow: flow, Logger: logger}
}

// otpStatus maps flow errors to HTTP status codes. Unknown errors are
// treated as internal.
func otpStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidPhone),
		errors.Is(err, auth.ErrMissingCode),
		errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, auth.ErrNotVerified):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCode),
		errors.Is(err, auth.ErrChallengeExpired),
		errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *OTPHandler) fail(c *gin.Context, err error) {
	status := otpStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("OTP flow failure", zap.Error(err))
		utils.JSONError(c, status, "Something went wrong, please try again", "")
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

// Send handles POST /api/auth/otp/send.
func (h *OTPHandler) Send(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "Phone number is required", "")
		return
	}

	result, err := h.Flow.Start(c.Request.Context(), req.Phone)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "OTP sent",
		"session_id": result.SessionID,
		"phone":      result.Phone,
	})
}

// Verify handles POST /api/auth/otp/verify.
func (h *OTPHandler) Verify(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		OTP       string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Session ID and OTP are required", "")
		return
	}

	result, err := h.Flow.Verify(c.Request.Context(), req.SessionID, req.OTP)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Resend handles POST /api/auth/otp/resend.
func (h *OTPHandler) Resend(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Session ID is required", "")
		return
	}

	if err := h.Flow.Resend(c.Request.Context(), req.SessionID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP resent"})
}

// CompleteProfile handles POST /api/auth/otp/complete.
func (h *OTPHandler) CompleteProfile(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		FullName  string `json:"full_name"`
		Email     string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Session ID and full name are required", "")
		return
	}

	result, err := h.Flow.CompleteProfile(c.Request.Context(), req.SessionID, req.FullName, req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Cancel handles DELETE /api/auth/otp/:sessionID.
func (h *OTPHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Flow.Cancel(c.Request.Context(), sessionID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Authentication cancelled"})
}
