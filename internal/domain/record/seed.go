package record

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seeds/default.yaml
var defaultSeed []byte

// Seed holds the mock records a new book is initialised with, per kind.
type Seed struct {
	Todo  []SeedRecord `yaml:"todo"`
	Diary []SeedRecord `yaml:"diary"`
}

type SeedRecord struct {
	ID      string     `yaml:"id"`
	Content string     `yaml:"content"`
	Done    bool       `yaml:"is_done"`
	Emotion Emotion    `yaml:"emotion_id"`
	Date    *time.Time `yaml:"date"`
}

// DefaultSeed returns the embedded mock data.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads seed data from a YAML file.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return ParseSeed(f)
}

func ParseSeed(r io.Reader) (*Seed, error) {
	var s Seed
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &s, nil
}

// Records converts the seed for kind into records. Entries without a date
// are stamped with now, like the mock data they stand for.
func (s *Seed) Records(kind Kind, now time.Time) ([]Record, error) {
	var src []SeedRecord
	switch kind {
	case KindTodo:
		src = s.Todo
	case KindDiary:
		src = s.Diary
	default:
		return nil, kind.Validate()
	}

	out := make([]Record, 0, len(src))
	for i, sr := range src {
		id, err := ParseID(sr.ID)
		if err != nil {
			return nil, fmt.Errorf("seed %s[%d]: %w", kind, i, err)
		}
		date := now
		if sr.Date != nil {
			date = *sr.Date
		}
		out = append(out, Record{
			ID:      id,
			Content: sr.Content,
			Done:    sr.Done,
			Emotion: sr.Emotion,
			Date:    truncateDate(date),
		})
	}
	return out, nil
}
