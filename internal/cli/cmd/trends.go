package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	trendsLimit int
	trendsJSON  bool
	pruneDays   int
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Inspect and manage the trend store",
}

var trendsTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest-weighted search terms",
	RunE:  runTrendsTop,
}

var trendsSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load terms into the trend store",
	Long: `Load terms from a file, one per line, formatted as "<weight> <term>".

Lines starting with # and blank lines are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrendsSeed,
}

var trendsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove terms not reinforced recently",
	RunE:  runTrendsPrune,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.AddCommand(trendsTopCmd, trendsSeedCmd, trendsPruneCmd)

	trendsTopCmd.Flags().IntVar(&trendsLimit, "limit", 20, "maximum terms to show")
	trendsTopCmd.Flags().BoolVar(&trendsJSON, "json", false, "output as JSON")
	trendsPruneCmd.Flags().IntVar(&pruneDays, "days", 180, "retention window in days")
}

func runTrendsTop(_ *cobra.Command, _ []string) error {
	app := GetApp()

	entries, err := app.SuggestUC.Top(app.Ctx(), trendsLimit)
	if err != nil {
		return err
	}

	if trendsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Printf("%8d  %s\n", e.Weight, e.Term)
	}
	return nil
}

func runTrendsSeed(_ *cobra.Command, args []string) error {
	app := GetApp()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	terms := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		weightStr, term, found := strings.Cut(line, " ")
		if !found {
			return fmt.Errorf("line %d: expected \"<weight> <term>\", got %q", lineNo, line)
		}
		weight, err := strconv.ParseInt(weightStr, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid weight %q: %w", lineNo, weightStr, err)
		}
		terms[strings.TrimSpace(term)] = weight
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	loaded, err := app.SuggestUC.Seed(app.Ctx(), terms)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d terms\n", loaded)
	return nil
}

func runTrendsPrune(_ *cobra.Command, _ []string) error {
	app := GetApp()

	removed, err := app.SuggestUC.Prune(app.Ctx(), time.Duration(pruneDays)*24*time.Hour)
	if err != nil {
		return err
	}

	fmt.Printf("removed %d stale terms\n", removed)
	return nil
}
