package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroids-destroyer/internal/platform/tui"
	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
	"github.com/vovakirdan/asteroids-destroyer/internal/storage"
)

var (
	flagInteractive bool
	flagRecent      bool
	flagClear       bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Without a mode, shows a summary of every mode that has runs.
With a mode, shows its best runs.

Examples:
  asteroids scores
  asteroids scores classic --limit 20
  asteroids scores --recent
  asteroids scores modern --clear
  asteroids scores -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full screen table")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs of every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the given mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	switch {
	case flagClear:
		if len(args) == 0 {
			return errors.New("--clear needs a mode")
		}
		if err := store.ClearScores(args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s runs.\n", modeTitle(args[0]))
		return nil
	case flagRecent:
		return printRecentRuns(store)
	case len(args) == 0:
		return printSummary(store)
	}
	return printTopRuns(store, args[0])
}

func printTopRuns(store *storage.Store, mode string) error {
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'asteroids modes' to see available modes", mode)
	}

	runs, err := store.TopScores(mode, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", modeTitle(mode))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'asteroids play --mode %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-12s  %s\n", "Rank", "Score", "Outcome", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-12s  %s\n", "----", "-----", "-------", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-8d  %-10s  %-12s  %s\n",
			i+1, r.Score, r.Outcome, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(mode); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printRecentRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-8s  %-10s  %-8s  %s\n", "Date", "Mode", "Score", "Outcome", "Rocks", "Seed")
	fmt.Printf("  %-16s  %-10s  %-8s  %-10s  %-8s  %s\n", "----", "----", "-----", "-------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-8d  %-10s  %-8d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), modeTitle(r.Mode), r.Score, r.Outcome, r.Destroyed, r.Seed)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Printf("  %-10s  %-5s  %-6s  %-8s  %-9s  %s\n", "Mode", "Runs", "Best", "Average", "Victories", "Last played")
	fmt.Printf("  %-10s  %-5s  %-6s  %-8s  %-9s  %s\n", "----", "----", "----", "-------", "---------", "-----------")
	for _, m := range modes {
		st := stats[m]
		fmt.Printf("  %-10s  %-5d  %-6d  %-8.1f  %-9d  %s\n",
			modeTitle(m), st.Runs, st.HighScore, st.AvgScore, st.Victories, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func modeTitle(name string) string {
	for _, m := range registry.List() {
		if m.Name == name {
			return m.Title
		}
	}
	return name
}
