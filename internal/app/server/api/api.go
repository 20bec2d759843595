// Package api wires the HTTP surface of the record book server:
//
//	GET    /api/v1/health
//	POST   /api/v1/sessions             open a session (body: {"kind":"todo"|"diary"})
//	GET    /api/v1/sessions/{session}   describe a session
//	DELETE /api/v1/sessions/{session}   close a session
//	GET    /api/v1/records?q=           list or search (X-Session-ID)
//	POST   /api/v1/records              create
//	GET    /api/v1/records/{id}         find
//	PATCH  /api/v1/records/{id}         change fields
//	PUT    /api/v1/records/{id}         replace
//	POST   /api/v1/records/{id}/toggle  flip done
//	DELETE /api/v1/records/{id}         delete
//	POST   /api/v1/actions              raw tagged action
//	GET    /api/v1/stats
//	GET    /metrics
package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	healthAPI "recordbook/internal/app/server/api/http/health"
	"recordbook/internal/app/server/api/http/middleware"
	"recordbook/internal/app/server/api/http/middleware/logger"
	"recordbook/internal/app/server/api/http/middleware/sessionauth"
	recordAPI "recordbook/internal/app/server/api/http/record"
	sessionAPI "recordbook/internal/app/server/api/http/session"
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

// Sessions is what the API needs from the session service.
type Sessions interface {
	session.Servicer
	Count(ctx context.Context) int
}

type Deps struct {
	Records     record.Servicer
	Sessions    Sessions
	DefaultKind record.Kind
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

type Handlers struct {
	Health  *healthAPI.Handler
	Session *sessionAPI.Handler
	Record  *recordAPI.Handler
}

// New builds the router with every operation registered.
func New(d Deps) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	config := huma.DefaultConfig("Record Book API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"session": {Type: "apiKey", In: "header", Name: sessionauth.Header},
	}
	API := humachi.New(mux, config)

	h := handlers(API, d)
	h.Health.SetupRoutes(API)
	h.Session.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(api huma.API, d Deps) *Handlers {
	loggerMW := logger.New(d.Log)
	sessionMW := sessionauth.New(api, d.Sessions, d.Log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(d.Sessions, d.Log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	sessionHandler := sessionAPI.NewHandler(d.Sessions, d.DefaultKind, d.Log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), sessionMW.Middleware())
	recordHandler := recordAPI.NewHandler(d.Records, d.Log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Session: sessionHandler,
		Record:  recordHandler,
	}
}
