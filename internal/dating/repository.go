package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps at most one wizard session per user between requests
type SessionStore interface {
	Get(ctx context.Context, uid string) (*WizardSession, error)
	Save(ctx context.Context, session *WizardSession) error
	Delete(ctx context.Context, uid string) error
}

const sessionKeyPrefix = "dating:wizard:"

func sessionKey(uid string) string {
	return sessionKeyPrefix + uid
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore stores sessions as JSON values that expire after ttl
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, uid string) (*WizardSession, error) {
	data, err := s.client.Get(ctx, sessionKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrWizardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}

	var session WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	session.restore()
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.UID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, uid string) error {
	if err := s.client.Del(ctx, sessionKey(uid)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

// MemorySessionStore is the in-process fallback when Redis is unavailable.
// Sessions are kept as JSON so callers never share mutable state.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

// NewMemorySessionStore creates an empty store. A non-positive ttl keeps
// sessions until they are deleted.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, uid string) (*WizardSession, error) {
	s.mu.Lock()
	entry, ok := s.sessions[uid]
	if ok && s.expired(entry) {
		delete(s.sessions, uid)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrWizardNotFound
	}

	var session WizardSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	session.restore()
	return &session, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, session *WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}

	entry := memorySession{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[session.UID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, uid string) error {
	s.mu.Lock()
	delete(s.sessions, uid)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for uid, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, uid)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) expired(entry memorySession) bool {
	return !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)
}
