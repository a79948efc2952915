package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catrun/internal/identity"
	"github.com/vovakirdan/catrun/internal/platform/tui"
	"github.com/vovakirdan/catrun/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresGroup string
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best finished runs.

Examples:
  catrun scores
  catrun scores --limit 25
  catrun scores --group weekly
  catrun scores -i            # Browse in a table
  catrun scores --clear       # Delete all runs of the group`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresGroup, "group", "", "Leaderboard group (default: config storage.group_id)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the group")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	groupID := cfg.Storage.GroupID
	if cmd.Flags().Changed("group") {
		groupID = flagScoresGroup
	}

	// Open score storage
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.ClearRuns(ctx, groupID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunLeaderboard(store, groupID, flagScoresLimit, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running leaderboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(ctx, groupID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	if groupID != "" {
		fmt.Printf("High Scores - %s\n", groupID)
	} else {
		fmt.Println("High Scores")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catrun play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %s\n", "Rank", "Name", "Score", "Dist", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %s\n", "----", "----", "-----", "----", "----")

	for i, run := range runs {
		dateStr := run.EndedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-8.1f  %s\n", i+1, run.DisplayName(), run.Score, run.Distance, dateStr)
	}

	// Show this player's best, which may be outside the top list
	profile := identity.Open(identity.AppName, nil)
	best, ok, err := store.BestRun(ctx, profile.UserID())
	if err == nil && ok {
		fmt.Println()
		fmt.Printf("Your best: %d (%.1f)\n", best.Score, best.Distance)
	}
}
