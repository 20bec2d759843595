package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Action names as they appear on the wire.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionInit   = "INIT"
)

// Action is a request to transform a book's collection. The set of
// variants is closed: Create, Update, Delete and Init.
type Action interface {
	Name() string
	apply(state []Record) []Record
}

// Create prepends a fully formed record.
type Create struct {
	Record Record
}

// Update replaces the record with the given id by a patched copy.
type Update struct {
	ID    ID
	Patch Patch
}

// Delete removes the record with the given id.
type Delete struct {
	ID ID
}

// Init replaces the whole collection.
type Init struct {
	Records []Record
}

func (Create) Name() string { return ActionCreate }
func (Update) Name() string { return ActionUpdate }
func (Delete) Name() string { return ActionDelete }
func (Init) Name() string   { return ActionInit }

// Toggle flips the done flag of a todo record.
func Toggle(id ID) Update {
	return Update{ID: id, Patch: Patch{ToggleDone: true}}
}

// Replace overwrites the record carrying rec.ID with rec.
func Replace(rec Record) Update {
	return Update{ID: rec.ID, Patch: ReplaceWith(rec)}
}

type envelope struct {
	Type     string          `json:"type"`
	ID       *ID             `json:"id"`
	TargetID *ID             `json:"targetId"`
	NewItem  json.RawMessage `json:"newItem"`
	Data     json.RawMessage `json:"data"`
}

type wireRecord struct {
	ID         ID      `json:"id"`
	Content    string  `json:"content"`
	IsDone     bool    `json:"isDone"`
	EmotionID  Emotion `json:"emotionId"`
	Date       *int64  `json:"date"`
	CreateDate *int64  `json:"createDate"`
}

func (w wireRecord) record() (Record, error) {
	if w.ID == "" {
		return Record{}, fmt.Errorf("%w: record without id", ErrInvalidID)
	}

	rec := Record{
		ID:      w.ID,
		Content: w.Content,
		Done:    w.IsDone,
		Emotion: w.EmotionID,
	}
	switch {
	case w.Date != nil:
		rec.Date = FromMillis(*w.Date)
	case w.CreateDate != nil:
		rec.Date = FromMillis(*w.CreateDate)
	}
	return rec, nil
}

// DecodeAction parses a tagged action such as
//
//	{"type":"CREATE","data":{"id":3,"content":"D","emotionId":2,"date":1700000000000}}
//	{"type":"UPDATE","id":1}
//	{"type":"DELETE","targetId":"1"}
//	{"type":"INIT","data":[...]}
//
// An UPDATE carrying only an id toggles the done flag; one carrying data
// replaces the record. Unknown types are rejected with ErrUnknownAction.
func DecodeAction(data []byte) (Action, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	switch strings.ToUpper(strings.TrimSpace(env.Type)) {
	case ActionCreate:
		payload := env.Data
		if len(payload) == 0 {
			payload = env.NewItem
		}
		rec, err := decodeWireRecord(payload)
		if err != nil {
			return nil, err
		}
		return Create{Record: rec}, nil

	case ActionUpdate:
		if len(env.Data) > 0 {
			rec, err := decodeWireRecord(env.Data)
			if err != nil {
				return nil, err
			}
			return Replace(rec), nil
		}
		id, err := firstID(env.ID, env.TargetID)
		if err != nil {
			return nil, err
		}
		return Toggle(id), nil

	case ActionDelete:
		id, err := firstID(env.TargetID, env.ID)
		if err != nil {
			return nil, err
		}
		return Delete{ID: id}, nil

	case ActionInit:
		var items []wireRecord
		if len(env.Data) > 0 {
			if err := unmarshalNumbers(env.Data, &items); err != nil {
				return nil, fmt.Errorf("%w: init data: %w", ErrInvalidData, err)
			}
		}
		records := make([]Record, 0, len(items))
		for _, item := range items {
			rec, err := item.record()
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return Init{Records: records}, nil

	case "":
		return nil, fmt.Errorf("%w: missing type", ErrUnknownAction)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}

func decodeWireRecord(payload json.RawMessage) (Record, error) {
	if len(payload) == 0 {
		return Record{}, fmt.Errorf("%w: missing record payload", ErrInvalidData)
	}
	var w wireRecord
	if err := unmarshalNumbers(payload, &w); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return w.record()
}

func firstID(ids ...*ID) (ID, error) {
	for _, id := range ids {
		if id != nil && *id != "" {
			return *id, nil
		}
	}
	return "", fmt.Errorf("%w: action without target id", ErrInvalidID)
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
