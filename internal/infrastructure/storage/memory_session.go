package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

type sessionEntry struct {
	lookup   entity.LookupResult
	lastUsed time.Time
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository in-memory session store. At most maxSessions
// sessions are kept; the least recently used ones are evicted first.
// Sessions idle for longer than ttl are forgotten (ttl <= 0 disables expiry).
func NewMemorySessionRepository(maxSessions int, ttl time.Duration) repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*sessionEntry),
		maxSize:  maxSessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SaveLookup remembers result for sessionID
func (m *memorySessionRepository) SaveLookup(ctx context.Context, sessionID string, result entity.LookupResult) error {
	if sessionID == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionID] = &sessionEntry{lookup: result, lastUsed: m.now()}

	if m.maxSize > 0 && len(m.sessions) > m.maxSize {
		m.evictLocked(len(m.sessions) - m.maxSize)
	}
	return nil
}

// LastLookup latest lookup for sessionID. A hit counts as use of the session.
func (m *memorySessionRepository) LastLookup(ctx context.Context, sessionID string) (entity.LookupResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[sessionID]
	if !exists {
		return entity.LookupResult{}, false, nil
	}
	now := m.now()
	if m.ttl > 0 && now.Sub(entry.lastUsed) > m.ttl {
		delete(m.sessions, sessionID)
		return entity.LookupResult{}, false, nil
	}

	entry.lastUsed = now
	return entry.lookup, true, nil
}

// evictLocked drops the n least recently used sessions. Caller holds mu.
func (m *memorySessionRepository) evictLocked(n int) {
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.sessions[ids[i]].lastUsed.Before(m.sessions[ids[j]].lastUsed)
	})
	for _, id := range ids[:n] {
		delete(m.sessions, id)
	}
}
