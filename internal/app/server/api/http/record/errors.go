package record

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"recordbook/internal/domain/record"
)

// toHTTP maps domain errors onto API errors.
func (h *Handler) toHTTP(err error) error {
	switch {
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound("record does not exist")
	case errors.Is(err, record.ErrDuplicateID):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, record.ErrUnknownAction),
		errors.Is(err, record.ErrInvalidID),
		errors.Is(err, record.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	h.log.Error("record request failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
