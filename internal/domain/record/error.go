package record

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidData   = errors.New("invalid record data")
	ErrInvalidID     = errors.New("invalid record id")
	ErrDuplicateID   = errors.New("record id already exists")
	ErrUnknownAction = errors.New("unknown action type")
	ErrEmptyContent  = errors.New("record content is empty")
)
