package record

import (
	"strings"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
)

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the records, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return list(cmd, "")
	},
}

var SearchCmd = &cobra.Command{
	Use:   "search <text>...",
	Short: "List records whose content contains the text, ignoring case",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return list(cmd, strings.Join(args, " "))
	},
}

func list(cmd *cobra.Command, query string) error {
	env, err := types.FromCmd(cmd)
	if err != nil {
		return err
	}

	res, err := env.App.ListRecords(cmd.Context(), query)
	if err != nil {
		return err
	}
	return env.Printer.Records(res)
}
