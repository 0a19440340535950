package session

import (
	"context"
	"sync"
	"time"

	"jewel-lending/backend/app/models"
)

// Identity is the authenticated caller carried in the request context.
type Identity struct {
	UserID    uint
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == models.RoleAdmin }

// Store keeps per-session side state: revoked token ids and pending flash messages.
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	AddFlash(ctx context.Context, key, msg string) error
	PopFlashes(ctx context.Context, key string) ([]string, error)
}

// flashTTL bounds how long an unread flash survives in either store.
const flashTTL = 10 * time.Minute

type flashQueue struct {
	msgs    []string
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	flashes map[string]*flashQueue
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: map[string]time.Time{}, flashes: map[string]*flashQueue{}, now: time.Now}
}

func (m *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (m *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[tokenID]
	return ok && exp.After(m.now()), nil
}

// AddFlash queues msg under key and refreshes the key's expiry, like RPUSH+EXPIRE
// in the redis store. Expired queues are swept on every write.
func (m *MemoryStore) AddFlash(_ context.Context, key, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, q := range m.flashes {
		if !q.expires.After(now) {
			delete(m.flashes, k)
		}
	}
	q, ok := m.flashes[key]
	if !ok {
		q = &flashQueue{}
		m.flashes[key] = q
	}
	q.msgs = append(q.msgs, msg)
	q.expires = now.Add(flashTTL)
	return nil
}

func (m *MemoryStore) PopFlashes(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.flashes[key]
	if !ok {
		return nil, nil
	}
	delete(m.flashes, key)
	if !q.expires.After(m.now()) {
		return nil, nil
	}
	return q.msgs, nil
}

func (m *MemoryStore) flashKeys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flashes)
}
