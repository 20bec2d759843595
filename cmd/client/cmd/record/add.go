package record

import (
	"strings"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
	"recordbook/internal/domain/record"
)

var (
	addEmotion int
	addDate    string
)

var AddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a record; the server assigns the id",
	Example: `  recordbook record add "신라면"
  recordbook record add --emotion 2 --date 2024-05-01 "good day"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		req := record.CreateRequest{
			Content:   strings.Join(args, " "),
			EmotionID: record.Emotion(addEmotion),
		}
		if addDate != "" {
			if req.Date, err = parseDate(addDate); err != nil {
				return err
			}
		}

		res, err := env.App.AddRecord(cmd.Context(), req)
		if err != nil {
			return err
		}
		return env.Printer.Mutation(env.App.Kind(), res)
	},
}

func init() {
	AddCmd.Flags().IntVarP(&addEmotion, "emotion", "e", 0, "diary emotion, 1 to 5")
	AddCmd.Flags().StringVar(&addDate, "date", "", "record date, defaults to now")
}
