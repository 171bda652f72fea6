// Package session holds per-conversation analysis state behind an injected
// store interface. Callers pass the store explicitly; there are no
// process-wide globals.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jordan/interview-copilot/internal/types"
)

// Conversation is the state accumulated for one interview-preparation
// session: the ingested posting and everything derived from it.
type Conversation struct {
	ID          string             `json:"id"`
	PostingText string             `json:"posting_text,omitempty"`
	Analysis    *types.JobAnalysis `json:"analysis,omitempty"`
	Exchanges   []types.Exchange   `json:"exchanges,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Store is the conversation-state contract the pipeline's callers inject.
type Store interface {
	Get(id string) (*Conversation, bool)
	Put(conv *Conversation)
	Delete(id string)
}

// defaultTTL evicts conversations idle for this long.
const defaultTTL = 2 * time.Hour

// MemoryStore is an in-process Store with TTL eviction. Entries are
// evicted lazily on access and by Purge.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*Conversation
	now     func() time.Time
}

// NewMemoryStore builds a store with the given TTL; ttl <= 0 selects the
// default.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*Conversation),
		now:     time.Now,
	}
}

// NewConversation creates and stores an empty conversation with a fresh ID.
func (s *MemoryStore) NewConversation() *Conversation {
	conv := &Conversation{
		ID:        uuid.NewString(),
		UpdatedAt: s.now(),
	}
	s.Put(conv)
	return conv
}

// Get returns the live conversation for id, expiring it when stale.
func (s *MemoryStore) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	conv, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(conv.UpdatedAt) > s.ttl {
		s.Delete(id)
		return nil, false
	}
	return conv, true
}

// Put stores a conversation, refreshing its idle timer.
func (s *MemoryStore) Put(conv *Conversation) {
	conv.UpdatedAt = s.now()
	s.mu.Lock()
	s.entries[conv.ID] = conv
	s.mu.Unlock()
}

// Delete removes a conversation.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Purge drops every expired conversation and reports how many were removed.
func (s *MemoryStore) Purge() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.entries {
		if conv.UpdatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries, expired ones included until the
// next access or Purge.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
