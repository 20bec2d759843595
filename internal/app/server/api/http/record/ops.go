package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var sessionSecurity = []map[string][]string{{"session": {}}}

func (h *Handler) operation(id, method, path, summary string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"records"},
		Security:    sessionSecurity,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	op := h.operation("records-list", http.MethodGet, "/api/v1/records", "List records")
	op.Description = "Returns the session's records, newest first. With q only records whose content contains q, ignoring case."
	return op
}

func (h *Handler) createOp() huma.Operation {
	op := h.operation("records-create", http.MethodPost, "/api/v1/records", "Create a record")
	op.Description = "Assigns the next counter id and prepends the record."
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) findOp() huma.Operation {
	return h.operation("records-find", http.MethodGet, "/api/v1/records/{id}", "Get a record")
}

func (h *Handler) patchOp() huma.Operation {
	return h.operation("records-patch", http.MethodPatch, "/api/v1/records/{id}", "Change some fields of a record")
}

func (h *Handler) replaceOp() huma.Operation {
	return h.operation("records-replace", http.MethodPut, "/api/v1/records/{id}", "Replace a record")
}

func (h *Handler) toggleOp() huma.Operation {
	return h.operation("records-toggle", http.MethodPost, "/api/v1/records/{id}/toggle", "Flip the done flag of a todo record")
}

func (h *Handler) deleteOp() huma.Operation {
	op := h.operation("records-delete", http.MethodDelete, "/api/v1/records/{id}", "Delete a record")
	op.Description = "Deleting an unknown id succeeds with affected 0."
	return op
}

func (h *Handler) dispatchOp() huma.Operation {
	op := h.operation("actions-dispatch", http.MethodPost, "/api/v1/actions", "Dispatch a raw action")
	op.Tags = []string{"actions"}
	op.Description = "Applies a tagged CREATE, UPDATE, DELETE or INIT action as sent by the original front ends. Unknown types are rejected."
	return op
}

func (h *Handler) statsOp() huma.Operation {
	op := h.operation("records-stats", http.MethodGet, "/api/v1/stats", "Book statistics")
	op.Tags = []string{"stats"}
	return op
}
