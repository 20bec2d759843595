package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
)

var DispatchCmd = &cobra.Command{
	Use:   "dispatch <json>|-",
	Short: "Send a raw CREATE, UPDATE, DELETE or INIT action",
	Example: `  recordbook record dispatch '{"type":"UPDATE","id":1}'
  cat init.json | recordbook record dispatch -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		raw := args[0]
		if raw == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read action: %w", err)
			}
			raw = string(data)
		}
		raw = strings.TrimSpace(raw)
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("action is not valid JSON")
		}

		res, err := env.App.Dispatch(cmd.Context(), json.RawMessage(raw))
		if err != nil {
			return err
		}
		return env.Printer.Mutation(env.App.Kind(), res)
	},
}
