package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

type Repository interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
	// Sweep drops every session expired at now and returns how many went away.
	Sweep(ctx context.Context, now time.Time) int
}

// NewRepo returns a process-local session store. Nothing outlives the process.
func NewRepo(log *slog.Logger) Repository {
	return &repository{
		sessions: make(map[string]*Session),
		log:      log,
	}
}

type repository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *slog.Logger
}

func (r *repository) Save(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s
	return nil
}

func (r *repository) Get(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *repository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

func (r *repository) Sweep(_ context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.log.Debug("expired sessions removed", "count", n, "left", len(r.sessions))
	}
	return n
}
