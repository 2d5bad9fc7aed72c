// Package cmd provides Cobra CLI commands for servio.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avencia/servio/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "servio",
		Short: "Incremental search for local service listings",
		Long: `Servio - trend-ranked incremental search for local service listings.

Type a query and get ranked suggestions from the trend store as you
type; picking a suggestion records the selection and reinforces its
ranking.

Use 'servio search' for the interactive screen, or explore the
subcommands for trend and event store operations.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}
