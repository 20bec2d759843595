package record

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/exp/slog"
	"recordbook/internal/metrics"
)

// Servicer is the record use-case surface shared by the HTTP handlers and
// the offline shell. Every call works on the book of the caller's session.
type Servicer interface {
	List(ctx context.Context, book *Book, query string) (ListResponse, error)
	Create(ctx context.Context, book *Book, draft Draft) (Record, error)
	Find(ctx context.Context, book *Book, id ID) (Record, error)
	Toggle(ctx context.Context, book *Book, id ID) (Result, error)
	Update(ctx context.Context, book *Book, id ID, patch Patch) (Result, error)
	Replace(ctx context.Context, book *Book, rec Record) (Result, error)
	Delete(ctx context.Context, book *Book, id ID) (Result, error)
	Dispatch(ctx context.Context, book *Book, action Action) (Result, error)
	Stats(ctx context.Context, book *Book) (StatsResponse, error)
}

// Service implements Servicer on top of Book with logging and metrics.
type Service struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a new record service
func NewService(log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		log:     log.With("component", "record_service"),
		metrics: m,
	}
}

// List returns the book's records, filtered by query when it is not empty
func (s *Service) List(_ context.Context, book *Book, query string) (ListResponse, error) {
	records := book.Snapshot()
	if query != "" {
		records = Filter(records, query)
		s.metrics.ObserveSearch()
	}

	return ListResponse{
		Kind:    book.Kind(),
		Query:   query,
		Records: ToItems(records),
		Total:   len(records),
	}, nil
}

// Create stores a new record under the next counter id
func (s *Service) Create(_ context.Context, book *Book, draft Draft) (Record, error) {
	rec, err := book.Create(draft)
	if err != nil {
		s.metrics.ObserveRejected(book.Kind().String(), ActionCreate)
		s.log.Warn("failed to create record", "kind", book.Kind(), "error", err)
		return Record{}, fmt.Errorf("create record: %w", err)
	}

	s.metrics.ObserveAction(book.Kind().String(), ActionCreate, 1)
	s.log.Info("record created", "record_id", rec.ID, "kind", book.Kind())
	return rec, nil
}

// Find returns a record by id or ErrNotFound
func (s *Service) Find(_ context.Context, book *Book, id ID) (Record, error) {
	lookup := book.Find(id)
	s.metrics.ObserveLookup(lookup.Found)
	if !lookup.Found {
		s.log.Debug("record not found", "record_id", id, "kind", book.Kind())
		return Record{}, ErrNotFound
	}
	return lookup.Record, nil
}

// Toggle flips the done flag of a todo record
func (s *Service) Toggle(ctx context.Context, book *Book, id ID) (Result, error) {
	return s.Dispatch(ctx, book, Toggle(id))
}

// Update applies a partial update
func (s *Service) Update(ctx context.Context, book *Book, id ID, patch Patch) (Result, error) {
	return s.Dispatch(ctx, book, Update{ID: id, Patch: patch})
}

// Replace overwrites a whole record
func (s *Service) Replace(ctx context.Context, book *Book, rec Record) (Result, error) {
	return s.Dispatch(ctx, book, Replace(rec))
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, book *Book, id ID) (Result, error) {
	return s.Dispatch(ctx, book, Delete{ID: id})
}

// Dispatch applies any action. Update and Delete of a missing id succeed
// with zero affected records.
func (s *Service) Dispatch(_ context.Context, book *Book, action Action) (Result, error) {
	kind := book.Kind().String()

	res, err := book.Dispatch(action)
	if err != nil {
		name := "unknown"
		if action != nil {
			name = action.Name()
		}
		s.metrics.ObserveRejected(kind, name)
		s.log.Warn("action rejected", "action", name, "kind", kind, "error", err)
		return Result{}, fmt.Errorf("dispatch %s: %w", name, err)
	}

	s.metrics.ObserveAction(kind, res.Action, res.Affected)
	if res.Affected == 0 {
		s.log.Debug("action matched no record", "action", res.Action, "kind", kind, "target", targetOf(action))
	} else {
		s.log.Info("action applied", "action", res.Action, "kind", kind, "affected", res.Affected)
	}
	return res, nil
}

// Stats summarises the book
func (s *Service) Stats(_ context.Context, book *Book) (StatsResponse, error) {
	records := book.Snapshot()

	stats := StatsResponse{
		Kind:   book.Kind(),
		Total:  len(records),
		NextID: book.NextID(),
	}
	if book.Kind() == KindDiary {
		stats.ByEmotion = make(map[string]int)
	}

	var newest time.Time
	for _, r := range records {
		if r.Done {
			stats.Done++
		}
		if stats.ByEmotion != nil {
			stats.ByEmotion[strconv.Itoa(int(r.Emotion))]++
		}
		if r.Date.After(newest) {
			newest = r.Date
		}
	}
	stats.Pending = stats.Total - stats.Done
	if !newest.IsZero() {
		stats.Newest = &newest
	}

	return stats, nil
}

func targetOf(action Action) ID {
	switch a := action.(type) {
	case Update:
		return a.ID
	case Delete:
		return a.ID
	case Create:
		return a.Record.ID
	}
	return ""
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrUnknownAction)
}
