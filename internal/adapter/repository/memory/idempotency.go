package memory

import (
	"context"
	"sync"
	"time"
)

// pending marks a key whose request is still being processed.
var pending = []byte("processing")

type idempotencyRecord struct {
	response  []byte
	expiresAt time.Time
}

// IdempotencyStore implements usecase.IdempotencyStore in memory.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]idempotencyRecord
	now     func() time.Time
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: make(map[string]idempotencyRecord),
		now:     time.Now,
	}
}

// CheckAndSet atomically checks if key exists, sets if not. A nil response
// locks the key with a placeholder until Update stores the final one.
func (s *IdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if rec, ok := s.records[key]; ok {
		if now.Before(rec.expiresAt) {
			return true, rec.response, nil
		}
		delete(s.records, key)
	}

	if response == nil {
		response = pending
	}
	s.records[key] = idempotencyRecord{response: response, expiresAt: now.Add(ttl)}

	return false, nil, nil
}

// Update updates an existing idempotency key with the final response.
func (s *IdempotencyStore) Update(_ context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = idempotencyRecord{response: response, expiresAt: s.now().Add(ttl)}
	return nil
}

// Delete forgets a key so the request can be retried.
func (s *IdempotencyStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Sweep drops expired keys and returns how many were removed.
func (s *IdempotencyStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}
