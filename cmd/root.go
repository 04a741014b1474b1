package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configFile string // Overrides ~/.config/lazaro/config.toml.
	logLevel   string // Overrides log.level from the config.
)

// The application for the running command. Built by PersistentPreRunE.
var app *application

var rootCmd = &cobra.Command{
	Use:           "lazaro",
	Short:         "CLI companion for planning and starting workouts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init has to work before a valid config exists.
		if cmd == initSetupCmd {
			return nil
		}

		a, err := newApplication(configFile, logLevel, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// Execute runs the root command. SIGINT cancels in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
