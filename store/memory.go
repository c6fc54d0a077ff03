package store

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore is the process-lifetime default backend. Records are lost
// on restart, which is acceptable: this is a cache of provider-issued
// credentials, not a system of record.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	records map[string]TokenRecord
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		records: make(map[string]TokenRecord),
	}
}

func (s *MemoryTokenStore) Put(ctx context.Context, record TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = record
	return nil
}

func (s *MemoryTokenStore) Get(ctx context.Context, userID string) (*TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &record, nil
}

func (s *MemoryTokenStore) IsReady(ctx context.Context) error {
	return nil
}

func (s *MemoryTokenStore) Name() string {
	return "TokenStore[memory]"
}

// MemoryStateStore keeps authorization states with a TTL matching the state
// cookie lifetime. Expired entries are dropped lazily on Consume.
type MemoryStateStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]time.Time
}

func NewMemoryStateStore(ttl time.Duration) *MemoryStateStore {
	return &MemoryStateStore{
		ttl:    ttl,
		states: make(map[string]time.Time),
	}
}

func (s *MemoryStateStore) Save(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state] = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryStateStore) Consume(ctx context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	if time.Now().After(deadline) {
		return false, nil
	}
	return true, nil
}
