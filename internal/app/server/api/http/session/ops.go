package session

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) openOp() huma.Operation {
	return huma.Operation{
		OperationID:   "session-open",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Open a session with a seeded book",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) infoOp() huma.Operation {
	return huma.Operation{
		OperationID: "session-info",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{session}",
		Summary:     "Describe a session and extend its lifetime",
		Tags:        []string{"sessions"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) closeOp() huma.Operation {
	return huma.Operation{
		OperationID:   "session-close",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{session}",
		Summary:       "Close a session and drop its book",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
