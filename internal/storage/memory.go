// Package storage provides session-scoped key/value storage.
package storage

import (
	"sync"
	"time"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStorage = (*Bucket)(nil)

// MemoryStore holds one Bucket per session. Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*Bucket
	log     *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*Bucket),
		log:     log,
	}
}

// Bucket returns the bucket for sessionID, creating it on first use.
func (s *MemoryStore) Bucket(sessionID string) *Bucket {
	s.mu.RLock()
	b, ok := s.buckets[sessionID]
	s.mu.RUnlock()
	if ok {
		b.touch()
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.buckets[sessionID]; ok {
		b.touch()
		return b
	}
	b = &Bucket{
		id:      sessionID,
		values:  make(map[string][]byte),
		log:     s.log,
		created: time.Now(),
	}
	b.touch()
	s.buckets[sessionID] = b
	s.log.Debug("opened bucket for session %s", sessionID)
	return b
}

// Drop discards a session's bucket.
func (s *MemoryStore) Drop(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.buckets, sessionID)
	s.log.Debug("dropped bucket for session %s", sessionID)
	return nil
}

// Expire drops every bucket untouched for longer than idle and returns how
// many were removed.
func (s *MemoryStore) Expire(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, b := range s.buckets {
		if b.lastUsed().Before(cutoff) {
			delete(s.buckets, id)
			n++
		}
	}
	if n > 0 {
		s.log.Info("expired %d idle session(s)", n)
	}
	return n
}

// Has reports whether sessionID has a live bucket.
func (s *MemoryStore) Has(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.buckets[sessionID]
	return ok
}

// Len returns the number of live buckets.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}

// Bucket is the key/value storage of a single session.
type Bucket struct {
	mu      sync.RWMutex
	id      string
	values  map[string][]byte
	log     *logger.Logger
	created time.Time
	used    time.Time
}

// ID returns the owning session id.
func (b *Bucket) ID() string { return b.id }

// Get returns a copy of the value stored under key.
func (b *Bucket) Get(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Set replaces the value stored under key.
func (b *Bucket) Set(key string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)

	b.mu.Lock()
	b.values[key] = v
	b.used = time.Now()
	b.mu.Unlock()

	b.log.Debug("session %s: set %s (%d bytes)", b.id, key, len(v))
}

// Remove deletes key. Missing keys are ignored.
func (b *Bucket) Remove(key string) {
	b.mu.Lock()
	delete(b.values, key)
	b.used = time.Now()
	b.mu.Unlock()
}

func (b *Bucket) touch() {
	b.mu.Lock()
	b.used = time.Now()
	b.mu.Unlock()
}

func (b *Bucket) lastUsed() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.used
}
