package handlers

import (
	"net/http"

	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes account registration and login endpoints.
type AuthHandler struct {
	Users  *user.DefaultUserService
	Logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *user.DefaultUserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "All fields are required", "")
		return
	}

	resp, err := h.Users.RegisterUser(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	resp, err := h.Users.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

// CheckPhone handles POST /api/auth/check-phone.
func (h *AuthHandler) CheckPhone(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "Phone number is required", "")
		return
	}

	exists, u, err := h.Users.CheckPhone(req.Phone)
	if err != nil {
		h.Logger.Error("Failed to check phone", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to check phone", "")
		return
	}

	if exists {
		c.JSON(http.StatusOK, gin.H{"exists": true, "user": u})
	} else {
		c.JSON(http.StatusOK, gin.H{"exists": false, "user": nil})
	}
}

// RegisterPhone handles POST /api/auth/register-phone.
func (h *AuthHandler) RegisterPhone(c *gin.Context) {
	var req struct {
		Phone         string `json:"phone"`
		FullName      string `json:"full_name"`
		UserType      string `json:"user_type"`
		PhoneVerified *bool  `json:"phone_verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Phone == "" || req.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Phone and full name are required", "")
		return
	}

	verified := true
	if req.PhoneVerified != nil {
		verified = *req.PhoneVerified
	}

	u, err := h.Users.RegisterPhoneUser(req.Phone, req.FullName, req.UserType, verified)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    u,
	})
}

// Me handles GET /api/auth/me for authenticated users.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	u, err := h.Users.GetByID(userID.(string))
	if err != nil {
		h.Logger.Error("Failed to fetch profile", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
