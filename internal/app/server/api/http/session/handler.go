package session

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

type Handler struct {
	service     session.Servicer
	defaultKind record.Kind
	log         *slog.Logger
	middleware  huma.Middlewares
}

func NewHandler(service session.Servicer, defaultKind record.Kind, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:     service,
		defaultKind: defaultKind,
		log:         log.With("component", "session_handler"),
		middleware:  middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.openOp(), h.open)
	huma.Register(api, h.infoOp(), h.info)
	huma.Register(api, h.closeOp(), h.closeSession)
}

func (h *Handler) open(ctx context.Context, input *openInput) (*infoOutput, error) {
	kind := h.defaultKind
	if input.Body != nil && input.Body.Kind != "" {
		kind = input.Body.Kind
	}
	if err := kind.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	sess, err := h.service.Create(ctx, kind)
	if err != nil {
		h.log.Error("open session", "kind", kind, "error", err)
		return nil, huma.Error500InternalServerError("could not open session")
	}
	return &infoOutput{Body: sess.Info()}, nil
}

func (h *Handler) info(ctx context.Context, input *sessionInput) (*infoOutput, error) {
	sess, err := h.service.Resolve(ctx, input.Session)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &infoOutput{Body: sess.Info()}, nil
}

func (h *Handler) closeSession(ctx context.Context, input *sessionInput) (*struct{}, error) {
	if err := h.service.Close(ctx, input.Session); err != nil {
		return nil, h.toHTTP(err)
	}
	return nil, nil
}

func (h *Handler) toHTTP(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidID):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, session.ErrNotFound):
		return huma.Error404NotFound("session does not exist")
	case errors.Is(err, session.ErrExpired):
		return huma.NewError(410, "session expired")
	}
	h.log.Error("session request failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
