package record

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
	"recordbook/internal/domain/record"
)

var (
	editEmotion int
	editDate    string
	editDone    bool
	editUndone  bool
	editReplace bool
)

var EditCmd = &cobra.Command{
	Use:   "edit <id> [text]...",
	Short: "Change a record",
	Long: `Changes only the given fields. With --replace the record is
overwritten as a whole, the way the diary editor saves a page.`,
	Example: `  recordbook record edit 3 "진라면 매운맛"
  recordbook record edit mock1 --emotion 4
  recordbook record edit mock2 --replace --emotion 1 --date 2024-05-01 "new page"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		content := strings.Join(args[1:], " ")

		var date int64
		if editDate != "" {
			if date, err = parseDate(editDate); err != nil {
				return err
			}
		}

		var res record.MutationResponse
		if editReplace {
			if content == "" {
				return errors.New("--replace needs the new text")
			}
			req := record.ReplaceRequest{
				Content:   content,
				IsDone:    editDone,
				EmotionID: record.Emotion(editEmotion),
				Date:      date,
			}
			res, err = env.App.ReplaceRecord(cmd.Context(), id, req)
		} else {
			req, perr := patchFrom(cmd, content, date)
			if perr != nil {
				return perr
			}
			res, err = env.App.EditRecord(cmd.Context(), id, req)
		}
		if err != nil {
			return err
		}
		return env.Printer.Mutation(env.App.Kind(), res)
	},
}

func patchFrom(cmd *cobra.Command, content string, date int64) (record.PatchRequest, error) {
	var req record.PatchRequest
	if content != "" {
		req.Content = &content
	}
	if cmd.Flags().Changed("emotion") {
		e := record.Emotion(editEmotion)
		req.EmotionID = &e
	}
	if date != 0 {
		req.Date = &date
	}
	switch {
	case editDone && editUndone:
		return req, errors.New("--done and --undone exclude each other")
	case editDone:
		done := true
		req.IsDone = &done
	case editUndone:
		done := false
		req.IsDone = &done
	}

	if req == (record.PatchRequest{}) {
		return req, errors.New("nothing to change, pass text or a flag")
	}
	return req, nil
}

func init() {
	EditCmd.Flags().IntVarP(&editEmotion, "emotion", "e", 0, "diary emotion, 1 to 5")
	EditCmd.Flags().StringVar(&editDate, "date", "", "new record date")
	EditCmd.Flags().BoolVar(&editDone, "done", false, "mark a todo item done")
	EditCmd.Flags().BoolVar(&editUndone, "undone", false, "mark a todo item not done")
	EditCmd.Flags().BoolVar(&editReplace, "replace", false, "overwrite the whole record")
}
