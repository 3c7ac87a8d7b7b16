package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryRepository keeps profiles in process memory. ListAll returns profiles
// in insertion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	order    []string
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository(profiles ...*Profile) *MemoryRepository {
	r := &MemoryRepository{profiles: make(map[string]*Profile)}
	for _, p := range profiles {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *MemoryRepository) Get(ctx context.Context, uid string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[uid]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return clone(p)
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.order))
	for _, uid := range r.order {
		p, err := clone(r.profiles[uid])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[uid]
	if !ok {
		return ErrProfileNotFound
	}

	updated, err := clone(p)
	if err != nil {
		return err
	}
	if err := updated.Apply(fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	updated.UpdatedAt = time.Now()
	r.profiles[uid] = updated
	return nil
}

func (r *MemoryRepository) Create(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.UID]; exists {
		return ErrProfileExists
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored, err := clone(p)
	if err != nil {
		return err
	}
	r.profiles[p.UID] = stored
	r.order = append(r.order, p.UID)
	return nil
}

// clone deep-copies a profile so callers never share state with the store
func clone(p *Profile) (*Profile, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to copy profile: %w", err)
	}
	var out Profile
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy profile: %w", err)
	}
	return &out, nil
}
