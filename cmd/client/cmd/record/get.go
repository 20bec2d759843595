package record

import (
	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		item, err := env.App.GetRecord(cmd.Context(), id)
		if err != nil {
			return notFound(env, err)
		}
		return env.Printer.Record(env.App.Kind(), item)
	},
}

var ToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip the done flag of a todo item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		res, err := env.App.ToggleRecord(cmd.Context(), id)
		if err != nil {
			return err
		}
		return env.Printer.Mutation(env.App.Kind(), res)
	},
}

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a record; unknown ids change nothing",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		res, err := env.App.DeleteRecord(cmd.Context(), id)
		if err != nil {
			return err
		}
		return env.Printer.Mutation(env.App.Kind(), res)
	},
}

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		stats, err := env.App.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return env.Printer.Stats(stats)
	},
}
