package sessionauth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"recordbook/internal/domain/session"
)

// Header carries the session id on every record request.
const Header = "X-Session-ID"

type contextKey string

const sessionKey contextKey = "session"

// Resolver turns the session header into the caller's session.
type Resolver struct {
	api      huma.API
	sessions session.Servicer
	log      *slog.Logger
}

func New(api huma.API, sessions session.Servicer, log *slog.Logger) *Resolver {
	return &Resolver{
		api:      api,
		sessions: sessions,
		log:      log.With("component", "session_middleware"),
	}
}

func (r *Resolver) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(Header)
		if id == "" {
			r.reject(ctx, http.StatusUnauthorized, "missing "+Header+" header", nil)
			return
		}

		sess, err := r.sessions.Resolve(ctx.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrInvalidID):
				r.reject(ctx, http.StatusBadRequest, "malformed session id", err)
			case errors.Is(err, session.ErrExpired):
				r.reject(ctx, http.StatusGone, "session expired, open a new one", err)
			case errors.Is(err, session.ErrNotFound):
				r.reject(ctx, http.StatusNotFound, "session does not exist", err)
			default:
				r.log.Error("resolve session", "session_id", id, "error", err)
				r.reject(ctx, http.StatusInternalServerError, "session lookup failed", nil)
			}
			return
		}

		next(huma.WithContext(ctx, WithSession(ctx.Context(), sess)))
	}
}

func (r *Resolver) reject(ctx huma.Context, status int, msg string, err error) {
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	if werr := huma.WriteErr(r.api, ctx, status, msg, errs...); werr != nil {
		r.log.Error("write error response", "error", werr)
	}
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok && s != nil
}
