package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version metadata, set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("servio %s (commit %s, built %s, %s)\n", Version, Commit, Date, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
