package types

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"recordbook/internal/app/client"
	"recordbook/internal/app/client/config"
)

type contextKey string

const ClientAppKey contextKey = "app"

// Env is what every subcommand gets from the root command.
type Env struct {
	App     *client.App
	Printer *client.Printer
	Config  *config.Config
	Log     *slog.Logger
}

func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, ClientAppKey, env)
}

func FromCmd(cmd *cobra.Command) (*Env, error) {
	if cmd.Context() == nil {
		return nil, errors.New("application is not initialised")
	}
	env, ok := cmd.Context().Value(ClientAppKey).(*Env)
	if !ok || env == nil {
		return nil, errors.New("application is not initialised")
	}
	return env, nil
}
