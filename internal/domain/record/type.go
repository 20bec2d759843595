package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Kind selects which flavour of record a book holds.
type Kind string

const (
	KindTodo  Kind = "todo"
	KindDiary Kind = "diary"
)

// Initial counter values: the todo list ships with three mock records (0..2),
// the diary is bulk loaded with string ids and counts from zero.
const (
	todoIDStart  = 3
	diaryIDStart = 0
)

func (Kind) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        "string",
		Enum:        []any{string(KindTodo), string(KindDiary)},
		Description: "Record book flavour",
		Examples:    []any{string(KindTodo)},
	}
}

func (k Kind) Validate() error {
	switch k {
	case KindTodo, KindDiary:
		return nil
	}
	return fmt.Errorf("%w: unknown kind %q", ErrInvalidData, string(k))
}

func (k Kind) String() string {
	return string(k)
}

// DefaultIDStart returns the first id handed out by a fresh counter.
func (k Kind) DefaultIDStart() int {
	if k == KindTodo {
		return todoIDStart
	}
	return diaryIDStart
}

// DisplayName returns a human readable name.
func (k Kind) DisplayName() string {
	switch k {
	case KindTodo:
		return "Todo list"
	case KindDiary:
		return "Diary"
	default:
		return "Unknown"
	}
}

// Emotion is the diary mood score. Zero means "not set" and is the only
// value a todo record may carry.
type Emotion int

const (
	EmotionNone Emotion = 0
	EmotionMin  Emotion = 1
	EmotionMax  Emotion = 5
)

func (Emotion) Schema(_ huma.Registry) *huma.Schema {
	lo, hi := float64(EmotionNone), float64(EmotionMax)
	return &huma.Schema{
		Type:        "integer",
		Minimum:     &lo,
		Maximum:     &hi,
		Description: "Diary emotion, 1 (best) to 5 (worst); 0 when unset",
		Examples:    []any{3},
	}
}

// ValidFor reports whether e is acceptable for records of kind k.
func (e Emotion) ValidFor(k Kind) error {
	switch k {
	case KindTodo:
		if e != EmotionNone {
			return fmt.Errorf("%w: todo records carry no emotion", ErrInvalidData)
		}
	case KindDiary:
		if e < EmotionMin || e > EmotionMax {
			return fmt.Errorf("%w: emotion %d out of range %d..%d", ErrInvalidData, e, EmotionMin, EmotionMax)
		}
	default:
		return k.Validate()
	}
	return nil
}
