// Package user implements account registration and login.
package user

import (
	"fmt"
	"time"

	userRepo "homeserve/database/repository/user"
	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthResponse carries the user record and its session token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// DefaultUserService is the standard UserService implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// RegisterUser creates a new email/password account and issues a token.
func (s *DefaultUserService) RegisterUser(email, password, name, phone string) (*AuthResponse, error) {
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("all fields are required")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     name,
		Phone:        phone,
		UserType:     "customer",
		PasswordHash: string(hashedPassword),
	}
	if err := s.Repo.Create(u); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

// AuthenticateUser verifies email/password credentials and issues a token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for login", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	if u == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

// CheckPhone reports whether a user record exists for the phone number.
func (s *DefaultUserService) CheckPhone(phone string) (bool, *models.User, error) {
	if phone == "" {
		return false, nil, fmt.Errorf("phone number is required")
	}
	u, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return false, nil, fmt.Errorf("failed to check phone: %w", err)
	}
	return u != nil, u, nil
}

// RegisterPhoneUser creates a user record after external phone verification.
func (s *DefaultUserService) RegisterPhoneUser(phone, fullName, userType string, phoneVerified bool) (*models.User, error) {
	if phone == "" || fullName == "" {
		return nil, fmt.Errorf("phone and full name are required")
	}
	if userType == "" {
		userType = "customer"
	}

	existing, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if existing != nil {
		existing.FullName = fullName
		existing.PhoneVerified = phoneVerified
		if err := s.Repo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return existing, nil
	}

	u := &models.User{
		ID:            uuid.New().String(),
		Phone:         phone,
		FullName:      fullName,
		UserType:      userType,
		PhoneVerified: phoneVerified,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetByID fetches a user record by ID.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	return u, nil
}

func (s *DefaultUserService) issueToken(u *models.User) (string, error) {
	contact := u.Email
	if contact == "" {
		contact = u.Phone
	}
	token, err := utils.GenerateToken(u.ID, contact, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}
	u.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(u); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}
	return token, nil
}
