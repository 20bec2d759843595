package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"recordbook/internal/app/server/api"
	"recordbook/internal/config"
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
	"recordbook/internal/metrics"
	"recordbook/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel)
	log.Info("starting record book server",
		"env", conf.Env,
		"address", conf.Server.RunAddress,
		"default_kind", conf.Book.Kind,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	seed, err := loadSeed(conf.Book.SeedPath)
	if err != nil {
		log.Error("failed to load seed", logger.Err(err))
		os.Exit(1)
	}

	sessions, err := session.NewService(session.NewRepo(log), log, m, session.Options{
		TTL:     conf.Session.TTL,
		IDStart: conf.Book.IDStart,
		Seed:    seed,
	})
	if err != nil {
		log.Error("failed to init session service", logger.Err(err))
		os.Exit(1)
	}

	router := api.New(api.Deps{
		Records:     record.NewService(log, m),
		Sessions:    sessions,
		DefaultKind: conf.Book.Kind,
		Gatherer:    reg,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunSweeper(ctx, conf.Session.SweepInterval)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
	}
	log.Info("server stopped")
}

// loadSeed returns nil for an empty path so the embedded seed is used.
func loadSeed(path string) (*record.Seed, error) {
	if path == "" {
		return nil, nil
	}
	return record.LoadSeedFile(path)
}
