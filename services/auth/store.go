// File: homeserve/services/auth/store.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	SessionPrefix   = "authSession:"
	ChallengePrefix = "otp:"

	// Session statuses as the flow advances.
	SessionStatusPending     = "pending"
	SessionStatusOTPVerified = "otp_verified"
	SessionStatusComplete    = "complete"
)

// Session represents the progress of a phone authentication flow.
type Session struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Challenge is an outstanding OTP challenge bound to a session.
type Challenge struct {
	Phone    string `json:"phone"`
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
}

// FlowStore persists auth sessions and OTP challenges. Entries expire after
// their TTL; Get returns nil for missing or expired entries.
type FlowStore interface {
	SaveSession(ctx context.Context, session Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SaveChallenge(ctx context.Context, sessionID string, ch Challenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, sessionID string) (*Challenge, error)
	DeleteChallenge(ctx context.Context, sessionID string) error
}

// RedisFlowStore keeps sessions in the auth cache DB and challenges in the
// OTP DB, matching the cache layout of the rest of the service.
type RedisFlowStore struct {
	Sessions   *redis.Client
	Challenges *redis.Client
}

func (s *RedisFlowStore) SaveSession(ctx context.Context, session Session, ttl time.Duration) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := s.Sessions.Set(ctx, SessionPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

func (s *RedisFlowStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.Sessions.Get(ctx, SessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

func (s *RedisFlowStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Del(ctx, SessionPrefix+sessionID).Err()
}

func (s *RedisFlowStore) SaveChallenge(ctx context.Context, sessionID string, ch Challenge, ttl time.Duration) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP challenge: %w", err)
	}
	if err := s.Challenges.Set(ctx, ChallengePrefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save OTP challenge: %w", err)
	}
	return nil
}

func (s *RedisFlowStore) GetChallenge(ctx context.Context, sessionID string) (*Challenge, error) {
	data, err := s.Challenges.Get(ctx, ChallengePrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP challenge: %w", err)
	}
	var ch Challenge
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP challenge: %w", err)
	}
	return &ch, nil
}

func (s *RedisFlowStore) DeleteChallenge(ctx context.Context, sessionID string) error {
	return s.Challenges.Del(ctx, ChallengePrefix+sessionID).Err()
}

// MemoryFlowStore is the standalone/test implementation of FlowStore.
type MemoryFlowStore struct {
	mu         sync.Mutex
	sessions   map[string]memoryEntry[Session]
	challenges map[string]memoryEntry[Challenge]
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewMemoryFlowStore() *MemoryFlowStore {
	return &MemoryFlowStore{
		sessions:   make(map[string]memoryEntry[Session]),
		challenges: make(map[string]memoryEntry[Challenge]),
	}
}

func (s *MemoryFlowStore) SaveSession(ctx context.Context, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.LastUpdatedAt = time.Now()
	s.sessions[session.ID] = memoryEntry[Session]{value: session, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryFlowStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, nil
	}
	session := entry.value
	return &session, nil
}

func (s *MemoryFlowStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryFlowStore) SaveChallenge(ctx context.Context, sessionID string, ch Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[sessionID] = memoryEntry[Challenge]{value: ch, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryFlowStore) GetChallenge(ctx context.Context, sessionID string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.challenges[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.challenges, sessionID)
		return nil, nil
	}
	ch := entry.value
	return &ch, nil
}

func (s *MemoryFlowStore) DeleteChallenge(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, sessionID)
	return nil
}

// PurgeExpired drops expired sessions and challenges. Reads already skip
// expired entries; this reclaims memory for flows that were abandoned.
func (s *MemoryFlowStore) PurgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	for id, entry := range s.challenges {
		if now.After(entry.expiresAt) {
			delete(s.challenges, id)
		}
	}
}
