package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
)

var SessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Open, inspect and close server sessions",
	Long: `Every session owns its own book on the server, seeded with the
sample records. The session id is remembered in ~/.recordbook/session.`,
}

var NewCmd = &cobra.Command{
	Use:   "new",
	Short: "Open a new session (use --kind diary for a diary)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		info, err := env.App.OpenSession(cmd.Context(), env.Config.Kind)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		return env.Printer.Session(info)
	},
}

var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		info, err := env.App.SessionInfo(cmd.Context())
		if err != nil {
			return err
		}
		return env.Printer.Session(info)
	},
}

var CloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the current session and drop its book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		id := env.App.SessionID()
		if err := env.App.CloseSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s closed\n", id)
		return nil
	},
}
