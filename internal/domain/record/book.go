package record

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Book owns one collection of records together with its id counter.
// Every mutation goes through Reduce and swaps the collection as a whole,
// so snapshots handed out earlier stay valid.
type Book struct {
	mu      sync.RWMutex
	kind    Kind
	records []Record
	counter *Counter
	now     func() time.Time
}

type BookOption func(*Book)

// WithClock overrides the clock used to stamp new records.
func WithClock(now func() time.Time) BookOption {
	return func(b *Book) {
		b.now = now
	}
}

// WithIDStart overrides the first counter value.
func WithIDStart(start int) BookOption {
	return func(b *Book) {
		b.counter = NewCounter(start)
	}
}

// NewBook creates an empty book. The counter starts at kind's default.
func NewBook(kind Kind, opts ...BookOption) (*Book, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	b := &Book{
		kind:    kind,
		records: []Record{},
		counter: NewCounter(kind.DefaultIDStart()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Book) Kind() Kind {
	return b.kind
}

// Snapshot returns a copy of the current collection.
func (b *Book) Snapshot() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.records)
}

// Len returns the number of records.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// NextID returns the id the next Create will assign.
func (b *Book) NextID() ID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return IntID(b.freeID())
}

// freeID is the first counter value not taken by a record. Raw actions
// and seeds bring their own ids, so the counter may point at one of them.
// Callers hold b.mu.
func (b *Book) freeID() int {
	n := b.counter.Peek()
	for indexOf(b.records, IntID(n)) >= 0 {
		n++
	}
	return n
}

// Find looks a record up by id.
func (b *Book) Find(id ID) Lookup {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Locate(b.records, id)
}

// Search filters the current collection by content.
func (b *Book) Search(query string) []Record {
	return Filter(b.Snapshot(), query)
}

// Create assigns the next free counter id to draft and prepends the record.
// Ids already taken are skipped. The counter only moves when the record
// was stored.
func (b *Book) Create(d Draft) (Record, error) {
	if strings.TrimSpace(d.Content) == "" {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidData, ErrEmptyContent)
	}
	if err := d.Emotion.ValidFor(b.kind); err != nil {
		return Record{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	date := d.Date
	if date.IsZero() {
		date = b.now()
	}

	n := b.freeID()
	rec := Record{
		ID:      IntID(n),
		Content: d.Content,
		Emotion: d.Emotion,
		Date:    truncateDate(date),
	}

	b.records = Reduce(b.records, Create{Record: rec})
	for b.counter.Peek() <= n {
		b.counter.Advance()
	}
	return rec, nil
}

// Toggle flips the done flag of a todo record.
func (b *Book) Toggle(id ID) (Result, error) {
	return b.Dispatch(Toggle(id))
}

// Update patches the record carrying id.
func (b *Book) Update(id ID, p Patch) (Result, error) {
	return b.Dispatch(Update{ID: id, Patch: p})
}

// Replace overwrites the record carrying rec.ID.
func (b *Book) Replace(rec Record) (Result, error) {
	return b.Dispatch(Replace(rec))
}

// Delete removes the record carrying id.
func (b *Book) Delete(id ID) (Result, error) {
	return b.Dispatch(Delete{ID: id})
}

// Init replaces the collection wholesale.
func (b *Book) Init(records []Record) (Result, error) {
	return b.Dispatch(Init{Records: records})
}

// Dispatch validates action against the book and applies it. Update and
// Delete of an unknown id are not errors; Result.Affected is zero then.
func (b *Book) Dispatch(action Action) (Result, error) {
	if action == nil {
		return Result{}, fmt.Errorf("%w: nil action", ErrUnknownAction)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	affected, err := b.check(action)
	if err != nil {
		return Result{}, err
	}

	b.records = Reduce(b.records, action)
	return Result{
		Action:   action.Name(),
		Affected: affected,
		Records:  slices.Clone(b.records),
	}, nil
}

// check validates action against the current state and returns how many
// records it touches. Callers hold b.mu.
func (b *Book) check(action Action) (int, error) {
	switch a := action.(type) {
	case Create:
		if err := b.validRecord(a.Record); err != nil {
			return 0, err
		}
		if indexOf(b.records, a.Record.ID) >= 0 {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateID, a.Record.ID)
		}
		return 1, nil

	case Update:
		if err := b.validPatch(a.Patch); err != nil {
			return 0, err
		}
		if indexOf(b.records, a.ID) < 0 {
			return 0, nil
		}
		return 1, nil

	case Delete:
		if indexOf(b.records, a.ID) < 0 {
			return 0, nil
		}
		return 1, nil

	case Init:
		seen := make(map[ID]struct{}, len(a.Records))
		for _, r := range a.Records {
			if err := b.validRecord(r); err != nil {
				return 0, err
			}
			if _, dup := seen[r.ID]; dup {
				return 0, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
			}
			seen[r.ID] = struct{}{}
		}
		return len(a.Records), nil
	}

	return 0, fmt.Errorf("%w: %T", ErrUnknownAction, action)
}

func (b *Book) validRecord(r Record) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if b.kind == KindDiary && r.Done {
		return fmt.Errorf("%w: diary records cannot be done", ErrInvalidData)
	}
	return r.Emotion.ValidFor(b.kind)
}

func (b *Book) validPatch(p Patch) error {
	if p.IsZero() {
		return fmt.Errorf("%w: empty update", ErrInvalidData)
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidData, ErrEmptyContent)
	}
	if b.kind == KindDiary && (p.ToggleDone || (p.Done != nil && *p.Done)) {
		return fmt.Errorf("%w: diary records cannot be done", ErrInvalidData)
	}
	if p.Emotion != nil {
		return p.Emotion.ValidFor(b.kind)
	}
	return nil
}
