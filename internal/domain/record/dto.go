package record

import (
	"time"
)

// Item is the wire form of a record. Field names follow the original
// front-end payloads so recorded actions can be replayed unchanged.
type Item struct {
	ID        ID      `json:"id" yaml:"id" doc:"Record id"`
	Content   string  `json:"content" yaml:"content" doc:"Free-form text"`
	IsDone    bool    `json:"isDone" yaml:"isDone" doc:"Todo completion flag"`
	EmotionID Emotion `json:"emotionId,omitempty" yaml:"emotionId,omitempty"`
	Date      int64   `json:"date" yaml:"date" doc:"Epoch milliseconds"`
}

func ToItem(r Record) Item {
	return Item{
		ID:        r.ID,
		Content:   r.Content,
		IsDone:    r.Done,
		EmotionID: r.Emotion,
		Date:      r.Millis(),
	}
}

func ToItems(records []Record) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = ToItem(r)
	}
	return items
}

func (i Item) Record() Record {
	return Record{
		ID:      i.ID,
		Content: i.Content,
		Done:    i.IsDone,
		Emotion: i.EmotionID,
		Date:    FromMillis(i.Date),
	}
}

type ListResponse struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Query   string `json:"query,omitempty" yaml:"query,omitempty"`
	Records []Item `json:"records" yaml:"records"`
	Total   int    `json:"total" yaml:"total"`
}

type CreateRequest struct {
	Content   string  `json:"content" yaml:"content" minLength:"1" doc:"Record text"`
	EmotionID Emotion `json:"emotionId,omitempty" yaml:"emotionId,omitempty"`
	Date      int64   `json:"date,omitempty" yaml:"date,omitempty" doc:"Epoch milliseconds, defaults to now"`
}

func (r CreateRequest) Draft() Draft {
	d := Draft{
		Content: r.Content,
		Emotion: r.EmotionID,
	}
	if r.Date != 0 {
		d.Date = FromMillis(r.Date)
	}
	return d
}

type PatchRequest struct {
	Content   *string  `json:"content,omitempty" yaml:"content,omitempty"`
	IsDone    *bool    `json:"isDone,omitempty" yaml:"isDone,omitempty"`
	EmotionID *Emotion `json:"emotionId,omitempty" yaml:"emotionId,omitempty"`
	Date      *int64   `json:"date,omitempty" yaml:"date,omitempty"`
}

func (r PatchRequest) Patch() Patch {
	p := Patch{
		Content: r.Content,
		Done:    r.IsDone,
		Emotion: r.EmotionID,
	}
	if r.Date != nil {
		t := FromMillis(*r.Date)
		p.Date = &t
	}
	return p
}

type ReplaceRequest struct {
	Content   string  `json:"content" yaml:"content" minLength:"1"`
	IsDone    bool    `json:"isDone,omitempty" yaml:"isDone,omitempty"`
	EmotionID Emotion `json:"emotionId,omitempty" yaml:"emotionId,omitempty"`
	Date      int64   `json:"date" yaml:"date"`
}

func (r ReplaceRequest) Record(id ID) Record {
	return Record{
		ID:      id,
		Content: r.Content,
		Done:    r.IsDone,
		Emotion: r.EmotionID,
		Date:    FromMillis(r.Date),
	}
}

type MutationResponse struct {
	Action   string `json:"action" yaml:"action"`
	Affected int    `json:"affected" yaml:"affected" doc:"Records changed, 0 when the id did not exist"`
	Total    int    `json:"total" yaml:"total"`
	Record   *Item  `json:"record,omitempty" yaml:"record,omitempty"`
}

type StatsResponse struct {
	Kind      Kind           `json:"kind" yaml:"kind"`
	Total     int            `json:"total" yaml:"total"`
	Done      int            `json:"done" yaml:"done"`
	Pending   int            `json:"pending" yaml:"pending"`
	ByEmotion map[string]int `json:"by_emotion,omitempty" yaml:"by_emotion,omitempty"`
	NextID    ID             `json:"next_id" yaml:"next_id"`
	Newest    *time.Time     `json:"newest,omitempty" yaml:"newest,omitempty"`
}
