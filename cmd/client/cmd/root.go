package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"recordbook/cmd/client/cmd/record"
	"recordbook/cmd/client/cmd/session"
	"recordbook/cmd/client/cmd/types"
	"recordbook/internal/app/client"
	"recordbook/internal/app/client/config"
	"recordbook/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	noColor    bool
	serverURL  string
	format     string
	kindFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "recordbook",
	Short: "Client for the record book server",
	Long: `recordbook keeps a todo list or a diary on a record book server.

Open a session first, then add, list, search, toggle, edit and delete
records. "recordbook shell" works offline on a local book.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if err := readConfigFile(); err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if kindFlag != "" {
		if cfg.Kind, err = client.ParseKind(kindFlag); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = format
	}
	if jsonOutput {
		cfg.Format = string(client.FormatJSON)
	}
	if noColor {
		color.NoColor = true
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.NewWithLevel(cfg.Env, level)

	outFormat, err := client.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	cmd.SetContext(types.WithEnv(cmd.Context(), &types.Env{
		App:     app,
		Printer: client.NewPrinter(cmd.OutOrStdout(), outFormat),
		Config:  cfg,
		Log:     log,
	}))
	return nil
}

func readConfigFile() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(filepath.Join(home, ".recordbook"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.recordbook/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and responses")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "shortcut for --format json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address, host:port or URL")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text, table, json, yaml")
	rootCmd.PersistentFlags().StringVarP(&kindFlag, "kind", "k", "", "book kind: todo or diary")

	rootCmd.AddCommand(session.SessionCmd)
	session.SessionCmd.AddCommand(session.NewCmd, session.InfoCmd, session.CloseCmd)

	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(
		record.AddCmd,
		record.ListCmd,
		record.SearchCmd,
		record.GetCmd,
		record.ToggleCmd,
		record.EditCmd,
		record.DeleteCmd,
		record.StatsCmd,
		record.DispatchCmd,
	)

	rootCmd.AddCommand(shellCmd)
}
