package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Server status",
		Description: "Reports the live session count and the server uptime. Needs no session.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
