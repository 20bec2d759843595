package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"recordbook/internal/domain/record"
	"recordbook/internal/metrics"
)

const DefaultTTL = 24 * time.Hour

type Servicer interface {
	Create(ctx context.Context, kind record.Kind) (*Session, error)
	Resolve(ctx context.Context, id string) (*Session, error)
	Close(ctx context.Context, id string) error
	Sweep(ctx context.Context) int
}

// Options tune new sessions.
type Options struct {
	// Idle time after which a session expires. Zero means DefaultTTL.
	TTL time.Duration
	// First counter value of new books; negative picks the kind default.
	IDStart int
	// Records loaded into every new book. Nil uses the embedded fixtures.
	Seed *record.Seed
}

type Service struct {
	repo    Repository
	log     *slog.Logger
	metrics *metrics.Metrics
	opts    Options
	now     func() time.Time
}

func NewService(repo Repository, log *slog.Logger, m *metrics.Metrics, opts Options) (*Service, error) {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Seed == nil {
		seed, err := record.DefaultSeed()
		if err != nil {
			return nil, fmt.Errorf("load default seed: %w", err)
		}
		opts.Seed = seed
	}

	return &Service{
		repo:    repo,
		log:     log.With("component", "session_service"),
		metrics: m,
		opts:    opts,
		now:     time.Now,
	}, nil
}

// Create opens a session with a freshly seeded book of the given kind.
func (s *Service) Create(ctx context.Context, kind record.Kind) (*Session, error) {
	book, err := s.newBook(kind)
	if err != nil {
		return nil, err
	}

	sess := newSession(uuid.NewString(), kind, book, s.now(), s.opts.TTL)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.metrics.SessionOpened(kind.String())
	s.log.Info("session opened", "session_id", sess.ID, "kind", kind, "records", book.Len())
	return sess, nil
}

func (s *Service) newBook(kind record.Kind) (*record.Book, error) {
	var opts []record.BookOption
	if s.opts.IDStart >= 0 {
		opts = append(opts, record.WithIDStart(s.opts.IDStart))
	}

	book, err := record.NewBook(kind, opts...)
	if err != nil {
		return nil, err
	}

	records, err := s.opts.Seed.Records(kind, s.now())
	if err != nil {
		return nil, fmt.Errorf("seed %s book: %w", kind, err)
	}
	if _, err := book.Init(records); err != nil {
		return nil, fmt.Errorf("seed %s book: %w", kind, err)
	}
	return book, nil
}

// Resolve returns a live session and extends its deadline.
func (s *Service) Resolve(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if sess.Expired(now) {
		if err := s.repo.Delete(ctx, id); err == nil {
			s.metrics.SessionsClosed(1)
		}
		s.log.Debug("session expired", "session_id", id)
		return nil, ErrExpired
	}

	sess.touch(now, s.opts.TTL)
	return sess, nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete session: %w", err)
	}

	s.metrics.SessionsClosed(1)
	s.log.Info("session closed", "session_id", id)
	return nil
}

// Sweep removes expired sessions.
func (s *Service) Sweep(ctx context.Context) int {
	n := s.repo.Sweep(ctx, s.now())
	s.metrics.SessionsClosed(n)
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(ctx); n > 0 {
				s.log.Info("expired sessions swept", "count", n)
			}
		}
	}
}

func (s *Service) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}
