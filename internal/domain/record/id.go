package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID is the canonical record identifier. Counter-assigned numbers and
// route parameters both end up as the same string form, so 2 and "2"
// address the same record.
type ID string

// IntID converts a counter value into an ID.
func IntID(n int) ID {
	return ID(strconv.Itoa(n))
}

func (id ID) String() string {
	return string(id)
}

// ParseID normalizes an identifier received at the boundary.
func ParseID(v any) (ID, error) {
	switch t := v.(type) {
	case ID:
		return checkID(string(t))
	case string:
		return checkID(t)
	case int:
		return IntID(t), nil
	case int32:
		return ID(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return ID(strconv.FormatInt(t, 10)), nil
	case uint:
		return ID(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return ID(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return ID(strconv.FormatUint(t, 10)), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return "", fmt.Errorf("%w: %v", ErrInvalidID, t)
		}
		return ID(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return ID(strconv.FormatInt(n, 10)), nil
		}
		f, err := t.Float64()
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidID, t)
		}
		return ParseID(f)
	case fmt.Stringer:
		return checkID(t.String())
	case nil:
		return "", fmt.Errorf("%w: missing", ErrInvalidID)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidID, v)
	}
}

// MustID is ParseID for literals known to be valid.
func MustID(v any) ID {
	id, err := ParseID(v)
	if err != nil {
		panic(err)
	}
	return id
}

// checkID refuses empty and padded ids; " 1 " is not an alias of "1".
func checkID(s string) (ID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if strings.TrimSpace(s) != s {
		return "", fmt.Errorf("%w: surrounding whitespace in %q", ErrInvalidID, s)
	}
	return ID(s), nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	parsed, err := ParseID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
