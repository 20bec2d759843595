package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// SessionCounter reports how many sessions are open.
type SessionCounter interface {
	Count(ctx context.Context) int
}

type Handler struct {
	sessions   SessionCounter
	started    time.Time
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(sessions SessionCounter, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		sessions:   sessions,
		started:    time.Now(),
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:   "OK",
			Sessions: h.sessions.Count(ctx),
			Uptime:   time.Since(h.started).Truncate(time.Second).String(),
		},
	}, nil
}
