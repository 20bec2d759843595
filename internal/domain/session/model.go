package session

import (
	"sync"
	"time"

	"recordbook/internal/domain/record"
)

// Session owns one client's book for as long as the client keeps using it.
// ID, Kind, Book and CreatedAt never change after creation.
type Session struct {
	ID        string
	Kind      record.Kind
	Book      *record.Book
	CreatedAt time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	expiresAt time.Time
}

func newSession(id string, kind record.Kind, book *record.Book, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		Kind:      kind,
		Book:      book,
		CreatedAt: now,
		lastSeen:  now,
		expiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session idled past its deadline at now.
func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.expiresAt.After(now)
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	s.lastSeen = now
	s.expiresAt = now.Add(ttl)
	s.mu.Unlock()
}

// Info is the public view of a session.
type Info struct {
	SessionID string        `json:"session_id" yaml:"session_id" doc:"Session id to send in X-Session-ID"`
	Kind      record.Kind   `json:"kind" yaml:"kind"`
	ExpiresAt time.Time     `json:"expires_at" yaml:"expires_at"`
	NextID    record.ID     `json:"next_id" yaml:"next_id"`
	Records   []record.Item `json:"records" yaml:"records"`
}

func (s *Session) Info() Info {
	return Info{
		SessionID: s.ID,
		Kind:      s.Kind,
		ExpiresAt: s.ExpiresAt(),
		NextID:    s.Book.NextID(),
		Records:   record.ToItems(s.Book.Snapshot()),
	}
}
