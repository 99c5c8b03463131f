package userRepo

import (
	"fmt"
	"sync"
	"time"

	"homeserve/models"
)

// MemoryUserRepo implements UserRepository with an in-memory map. It backs
// standalone mode and tests.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryUserRepo creates an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*models.User)}
}

// NewSeededMemoryUserRepo creates an in-memory repository pre-populated with
// the demo accounts standalone mode recognizes.
func NewSeededMemoryUserRepo() *MemoryUserRepo {
	repo := NewMemoryUserRepo()
	now := time.Now()
	for i, phone := range []string{"+1234567890", "+9876543210"} {
		u := &models.User{
			ID:            fmt.Sprintf("user_phone_%d", i+1),
			Phone:         phone,
			FullName:      "John Doe",
			UserType:      "customer",
			PhoneVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *MemoryUserRepo) clone(u *models.User) *models.User {
	cp := *u
	return &cp
}

// Create inserts a new user record.
func (r *MemoryUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if user.Email != "" && existing.Email == user.Email {
			return fmt.Errorf("a user with email %s already exists", user.Email)
		}
		if user.Phone != "" && existing.Phone == user.Phone {
			return fmt.Errorf("a user with phone %s already exists", user.Phone)
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = r.clone(user)
	return nil
}

// Update modifies an existing user record.
func (r *MemoryUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = r.clone(user)
	return nil
}

// Delete removes a user record by ID.
func (r *MemoryUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	delete(r.users, id)
	return nil
}

// GetByID retrieves a user by ID. Returns nil when not found.
func (r *MemoryUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return r.clone(u), nil
	}
	return nil, nil
}

// GetByEmail retrieves a user by email. Returns nil when not found.
func (r *MemoryUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && email != "" {
			return r.clone(u), nil
		}
	}
	return nil, nil
}

// GetByPhone retrieves a user by phone number. Returns nil when not found.
func (r *MemoryUserRepo) GetByPhone(phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Phone == phone && phone != "" {
			return r.clone(u), nil
		}
	}
	return nil, nil
}
