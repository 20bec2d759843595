package record

import (
	"time"
)

// Record is one entry of a book: a todo item or a diary page.
// Records are values; the book never hands out pointers into its state.
type Record struct {
	ID      ID
	Content string
	Done    bool
	Emotion Emotion
	Date    time.Time
}

// Millis returns the record date as milliseconds since the epoch.
func (r Record) Millis() int64 {
	return r.Date.UnixMilli()
}

// FromMillis converts epoch milliseconds into a record date.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// truncateDate keeps dates at millisecond precision so they survive the wire.
func truncateDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Patch describes the fields an UPDATE changes. Nil fields are kept.
type Patch struct {
	Content    *string
	Done       *bool
	ToggleDone bool
	Emotion    *Emotion
	Date       *time.Time
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Content == nil && p.Done == nil && !p.ToggleDone && p.Emotion == nil && p.Date == nil
}

// Apply returns a patched copy of r. The identifier never changes.
func (p Patch) Apply(r Record) Record {
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.Done != nil {
		r.Done = *p.Done
	}
	if p.ToggleDone {
		r.Done = !r.Done
	}
	if p.Emotion != nil {
		r.Emotion = *p.Emotion
	}
	if p.Date != nil {
		r.Date = truncateDate(*p.Date)
	}
	return r
}

// ReplaceWith builds a patch that overwrites every payload field with rec's.
func ReplaceWith(rec Record) Patch {
	content, done, emotion, date := rec.Content, rec.Done, rec.Emotion, rec.Date
	return Patch{
		Content: &content,
		Done:    &done,
		Emotion: &emotion,
		Date:    &date,
	}
}

// Draft is the user supplied part of a new record; the book assigns the rest.
type Draft struct {
	Content string
	Emotion Emotion
	Date    time.Time
}

// Result is the outcome of dispatching an action to a book.
type Result struct {
	Action   string
	Affected int
	Records  []Record
}
