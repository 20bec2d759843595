package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"recordbook/internal/app/client/config"
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

// App is the remote side of the CLI: every call goes to the server under
// the current session.
type App struct {
	config  *config.Config
	log     *slog.Logger
	http    *httpClient
	current *savedSession
}

// savedSession is what the CLI remembers between invocations.
type savedSession struct {
	ID     string      `yaml:"id"`
	Kind   record.Kind `yaml:"kind"`
	Server string      `yaml:"server"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config: cfg,
		log:    log.With("component", "client"),
		http:   NewHTTPClient(cfg, log),
	}

	switch {
	case cfg.SessionID != "":
		app.current = &savedSession{ID: cfg.SessionID, Kind: cfg.Kind, Server: cfg.BaseURL()}
	default:
		saved, err := loadSession(cfg.SessionPath)
		if err != nil {
			return nil, err
		}
		if saved != nil && saved.Server == cfg.BaseURL() {
			app.current = saved
		}
	}

	if app.current != nil {
		app.http.SetSession(app.current.ID)
		app.log.Debug("session restored", "session_id", app.current.ID, "kind", app.current.Kind)
	}
	return app, nil
}

func loadSession(path string) (*savedSession, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s savedSession
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	if s.ID == "" {
		return nil, nil
	}
	return &s, nil
}

func (a *App) saveSession(s *savedSession) error {
	if err := os.MkdirAll(filepath.Dir(a.config.SessionPath), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(a.config.SessionPath, data, 0o600)
}

// ParseKind reads a book kind given on the command line.
func ParseKind(s string) (record.Kind, error) {
	kind := record.Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Kind returns the kind of the current session, or the configured one.
func (a *App) Kind() record.Kind {
	if a.current != nil && a.current.Kind != "" {
		return a.current.Kind
	}
	return a.config.Kind
}

func (a *App) SessionID() string {
	if a.current == nil {
		return ""
	}
	return a.current.ID
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

// OpenSession starts a new server session and remembers it.
func (a *App) OpenSession(ctx context.Context, kind record.Kind) (session.Info, error) {
	if kind == "" {
		kind = a.config.Kind
	}

	info, err := a.http.OpenSession(ctx, kind)
	if err != nil {
		return info, err
	}

	a.current = &savedSession{ID: info.SessionID, Kind: info.Kind, Server: a.config.BaseURL()}
	a.http.SetSession(info.SessionID)
	if err := a.saveSession(a.current); err != nil {
		return info, fmt.Errorf("session %s opened but not saved: %w", info.SessionID, err)
	}
	return info, nil
}

func (a *App) SessionInfo(ctx context.Context) (session.Info, error) {
	if a.current == nil {
		return session.Info{}, ErrNoSession
	}
	return a.http.SessionInfo(ctx, a.current.ID)
}

// CloseSession ends the current session on the server and forgets it.
func (a *App) CloseSession(ctx context.Context) error {
	if a.current == nil {
		return ErrNoSession
	}

	err := a.http.CloseSession(ctx, a.current.ID)
	if err != nil && !errors.Is(err, ErrSessionGone) {
		return err
	}

	a.current = nil
	a.http.SetSession("")
	if rmErr := os.Remove(a.config.SessionPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", rmErr)
	}
	return nil
}

func (a *App) requireSession() error {
	if a.current == nil {
		return ErrNoSession
	}
	return nil
}

func (a *App) ListRecords(ctx context.Context, query string) (record.ListResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.ListResponse{}, err
	}
	return a.http.ListRecords(ctx, query)
}

func (a *App) GetRecord(ctx context.Context, id record.ID) (record.Item, error) {
	if err := a.requireSession(); err != nil {
		return record.Item{}, err
	}
	return a.http.GetRecord(ctx, id)
}

func (a *App) AddRecord(ctx context.Context, req record.CreateRequest) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.CreateRecord(ctx, req)
}

func (a *App) ToggleRecord(ctx context.Context, id record.ID) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.ToggleRecord(ctx, id)
}

func (a *App) EditRecord(ctx context.Context, id record.ID, req record.PatchRequest) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.PatchRecord(ctx, id, req)
}

func (a *App) ReplaceRecord(ctx context.Context, id record.ID, req record.ReplaceRequest) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.ReplaceRecord(ctx, id, req)
}

func (a *App) DeleteRecord(ctx context.Context, id record.ID) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.DeleteRecord(ctx, id)
}

// Dispatch validates action locally before sending it, so typos in the
// type tag never reach the server.
func (a *App) Dispatch(ctx context.Context, action json.RawMessage) (record.MutationResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.MutationResponse{}, err
	}
	if _, err := record.DecodeAction(action); err != nil {
		return record.MutationResponse{}, err
	}
	return a.http.Dispatch(ctx, action)
}

func (a *App) Stats(ctx context.Context) (record.StatsResponse, error) {
	if err := a.requireSession(); err != nil {
		return record.StatsResponse{}, err
	}
	return a.http.Stats(ctx)
}
