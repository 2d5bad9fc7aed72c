package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avencia/servio/internal/cli/model"
	"github.com/avencia/servio/internal/cli/styles"
	"github.com/avencia/servio/internal/domain/entity"
	"github.com/avencia/servio/internal/logging"
	"github.com/avencia/servio/internal/search"
	"github.com/avencia/servio/internal/ui/state"
)

var (
	searchQuery string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search service listings interactively",
	Long: `Interactive incremental search with trend-ranked suggestions.

With --query, runs a single non-interactive prefix query instead.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "run one prefix query and exit")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON (with --query)")
}

func runSearch(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if searchQuery != "" {
		return runSearchOnce()
	}

	return runSearchTUI()
}

// runSearchOnce performs a single prefix query without the TUI.
func runSearchOnce() error {
	app := GetApp()

	suggestions, err := app.SuggestUC.Search(app.Ctx(), searchQuery, app.Config().Search.MaxResults)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	for _, s := range suggestions {
		fmt.Printf("%8d  %s\n", s.Weight, s.Text)
	}
	return nil
}

// runSearchTUI runs the interactive search screen.
func runSearchTUI() error {
	app := GetApp()
	cfg := app.Config()

	ctx := logging.WithComponent(app.Ctx(), "tui")
	if cfg.Search.Identity != "" {
		ctx = logging.WithIdentity(ctx, cfg.Search.Identity)
	}
	log := logging.FromContext(ctx)

	// A one-slot channel coalesces change notifications from the
	// controller and the hint flag into TUI redraws.
	updates := make(chan struct{}, 1)
	notify := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	recorder := search.NewRecorder(app.TrackUC)
	ctrl := search.NewController(app.SuggestUC, recorder, search.Config{
		Identity:       cfg.Search.Identity,
		MinQueryLength: cfg.Search.MinQueryLength,
		Debounce:       cfg.Search.Debounce(),
		MaxResults:     cfg.Search.MaxResults,
		OnChange:       notify,
	})
	defer ctrl.Close()

	mapHint := state.NewTransientFlag(state.TransientFlagConfig{
		DefaultDuration: cfg.Hint.Timeout(),
		OnChange:        notify,
	})
	defer mapHint.Close()

	onSubmit := func(query string) {
		go func() {
			payload := map[string]string{
				"identity": cfg.Search.Identity,
				"text":     query,
			}
			if err := app.TrackUC.Record(ctx, entity.EventSearchSubmitted, payload); err != nil {
				log.Warn().Err(err).Msg("search submit event dropped")
			}
		}()
	}

	m := model.NewSearchModel(ctx, styles.DefaultTheme(), ctrl, mapHint, updates, onSubmit)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
