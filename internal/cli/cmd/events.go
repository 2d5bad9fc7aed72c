package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	eventsLimit int
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the tracking event store",
}

var eventsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent tracking events",
	RunE:  runEventsRecent,
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show event counts per kind",
	RunE:  runEventsStats,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsRecentCmd, eventsStatsCmd)

	eventsRecentCmd.Flags().IntVar(&eventsLimit, "limit", 0, "maximum events to show (0 uses config)")
	eventsRecentCmd.Flags().BoolVar(&eventsJSON, "json", false, "output as JSON")
}

func runEventsRecent(_ *cobra.Command, _ []string) error {
	app := GetApp()

	limit := eventsLimit
	if limit <= 0 {
		limit = app.Config().Events.RecentLimit
	}

	events, err := app.TrackUC.GetRecent(app.Ctx(), limit)
	if err != nil {
		return err
	}

	if eventsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	for _, e := range events {
		fmt.Printf("%s  %-22s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Payload["text"])
	}
	return nil
}

func runEventsStats(_ *cobra.Command, _ []string) error {
	app := GetApp()

	counts, err := app.TrackUC.CountByKind(app.Ctx())
	if err != nil {
		return err
	}

	for _, kc := range counts {
		fmt.Printf("%8d  %s\n", kc.Count, kc.Kind)
	}
	return nil
}
