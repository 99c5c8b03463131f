package handlers

import (
	"errors"
	"net/http"

	"homeserve/models"
	"homeserve/services/booking"
	"homeserve/services/coupon"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking creation and listing endpoints.
type BookingHandler struct {
	Svc    *booking.DefaultBookingService
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc *booking.DefaultBookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	// An authenticated session is the authoritative customer identity.
	if userID, exists := c.Get("userID"); exists {
		input.CustomerID = userID.(string)
	}

	record, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrMissingFields):
			utils.JSONError(c, http.StatusBadRequest, "Missing required fields",
				"Please provide service, date, time, address, and price")
		case errors.Is(err, booking.ErrPriceMismatch),
			errors.Is(err, coupon.ErrMissingCode),
			errors.Is(err, coupon.ErrInvalidCode):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, booking.ErrDuplicate):
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
		default:
			h.Logger.Error("Failed to create booking", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking", "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": record,
	})
}

// ListByCustomer handles GET /api/bookings/customer/:customerId.
func (h *BookingHandler) ListByCustomer(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Customer ID is required", "")
		return
	}

	bookings, err := h.Svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.Logger.Error("Failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", "")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
