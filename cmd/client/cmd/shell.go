package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"recordbook/cmd/client/cmd/types"
	"recordbook/internal/app/client"
	"recordbook/internal/domain/record"
)

var seedPath string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Work on a local book without a server",
	Long: `Starts an interactive shell on a book kept in memory. The book is
seeded with the sample records and is gone when the shell exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.FromCmd(cmd)
		if err != nil {
			return err
		}

		book, err := offlineBook(env.Config.Kind, seedPath)
		if err != nil {
			return err
		}

		sh := client.NewShell(
			record.NewService(env.Log, nil),
			book,
			env.Printer,
			cmd.OutOrStdout(),
			client.IsInteractive(os.Stdin),
		)
		return sh.Run(cmd.Context(), cmd.InOrStdin())
	},
}

func offlineBook(kind record.Kind, path string) (*record.Book, error) {
	seed, err := record.DefaultSeed()
	if path != "" {
		seed, err = record.LoadSeedFile(path)
	}
	if err != nil {
		return nil, err
	}

	book, err := record.NewBook(kind)
	if err != nil {
		return nil, err
	}
	records, err := seed.Records(kind, time.Now())
	if err != nil {
		return nil, fmt.Errorf("seed %s book: %w", kind, err)
	}
	if _, err := book.Init(records); err != nil {
		return nil, fmt.Errorf("seed %s book: %w", kind, err)
	}
	return book, nil
}

func init() {
	shellCmd.Flags().StringVar(&seedPath, "seed", "", "YAML file with the records to start from")
}
