package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"homeserve/config"
	bookingRepoPkg "homeserve/database/repository/booking"
	userRepoPkg "homeserve/database/repository/user"
	"homeserve/handlers"
	"homeserve/services/auth"
	"homeserve/services/booking"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var otpRegex = regexp.MustCompile(`\d{6}`)

type recordingSender struct {
	codes []string
}

func (s *recordingSender) Send(phone, message string) error {
	s.codes = append(s.codes, otpRegex.FindString(message))
	return nil
}

func newTestServer(t *testing.T) (*gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{
		Env:                "development",
		JWTSecret:          "test-secret",
		RateLimitMax:       1000,
		RateLimitWindowMin: 15,
		DefaultCountryCode: "+1",
		OTPMaxAttempts:     5,
	}

	userRepo := userRepoPkg.NewSeededMemoryUserRepo()
	bookingRepo := bookingRepoPkg.NewMemoryBookingRepo()
	bookingRepo.SampleOnEmpty = true

	sender := &recordingSender{}
	hb := &HandlerBundle{
		Auth: handlers.NewAuthHandler(&user.DefaultUserService{Repo: userRepo}, utils.GetLogger()),
		OTP: handlers.NewOTPHandler(&auth.PhoneAuthService{
			Repo:               userRepo,
			Store:              auth.NewMemoryFlowStore(),
			SMS:                sender,
			DefaultCountryCode: "+1",
			MaxAttempts:        5,
		}, utils.GetLogger()),
		Booking:  handlers.NewBookingHandler(&booking.DefaultBookingService{Repo: bookingRepo}, utils.GetLogger()),
		UserRepo: userRepo,
		Database: "Mock/In-Memory",
	}

	r := gin.New()
	RegisterRoutes(r, hb)
	return r, sender
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	w, body := doJSON(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Mock/In-Memory", body["database"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotNil(t, body["uptime"])
}

func TestNotFoundHandler(t *testing.T) {
	r, _ := newTestServer(t)
	w, body := doJSON(t, r, http.MethodGet, "/nope/nothing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", body["error"])
	assert.Equal(t, "/nope/nothing", body["path"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPITestEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	w, body := doJSON(t, r, http.MethodGet, "/api/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["endpoints"])
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "jane@example.com",
		"password": "hunter2secret",
		"name":     "Jane Roe",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["token"])
	userObj := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", userObj["email"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["token"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckPhone(t *testing.T) {
	r, _ := newTestServer(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/check-phone", gin.H{"phone": "+1234567890"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["exists"])
	assert.NotNil(t, body["user"])

	w, body = doJSON(t, r, http.MethodPost, "/api/auth/check-phone", gin.H{"phone": "+15550001111"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["exists"])
	assert.Nil(t, body["user"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/check-phone", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	payload := gin.H{
		"customer_id":    "cust-9",
		"service":        "House Cleaning",
		"scheduled_date": "2026-09-15",
		"scheduled_time": "10:00",
		"address":        "12 Elm Street",
		"total_price":    150,
		"final_amount":   155,
	}
	w, body := doJSON(t, r, http.MethodPost, "/api/bookings", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	bookingObj := body["booking"].(map[string]any)
	assert.Equal(t, "pending", bookingObj["status"])
	assert.Equal(t, "pending", bookingObj["payment_status"])
	assert.Equal(t, 150.0, bookingObj["total_price"])
	assert.Equal(t, 155.0, bookingObj["final_amount"])

	for _, field := range []string{"service", "scheduled_date", "scheduled_time", "address", "total_price"} {
		incomplete := gin.H{}
		for k, v := range payload {
			if k != field {
				incomplete[k] = v
			}
		}
		w, errBody := doJSON(t, r, http.MethodPost, "/api/bookings", incomplete)
		assert.Equal(t, http.StatusBadRequest, w.Code, "missing %s", field)
		assert.Equal(t, "Missing required fields", errBody["error"], "missing %s", field)
	}
}

func TestListBookingsReturnsSamplesWhenEmpty(t *testing.T) {
	r, _ := newTestServer(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/bookings/customer/cust-42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings := body["bookings"].([]any)
	require.Len(t, bookings, 2)
	first := bookings[0].(map[string]any)
	assert.Equal(t, "cust-42", first["customer_id"])
}

func TestOTPFlowOverHTTP(t *testing.T) {
	r, sender := newTestServer(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/otp/send", gin.H{"phone": "2025550123"})
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := body["session_id"].(string)
	require.NotEmpty(t, sessionID)
	require.Len(t, sender.codes, 1)
	code := sender.codes[0]

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/otp/verify", gin.H{
		"session_id": sessionID, "otp": wrong,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = doJSON(t, r, http.MethodPost, "/api/auth/otp/verify", gin.H{
		"session_id": sessionID, "otp": code,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["needs_profile"])

	w, body = doJSON(t, r, http.MethodPost, "/api/auth/otp/complete", gin.H{
		"session_id": sessionID, "full_name": "Jane Roe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// The issued token authenticates the profile endpoint.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Jane Roe", me["user"].(map[string]any)["full_name"])
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	r, _ := newTestServer(t)
	w, _ := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
