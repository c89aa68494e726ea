package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and finished sessions",
	Long: `Display the all-time high score. With the sqlite storage backend the
best and most recent finished sessions are listed too.

Examples:
  snake scores
  snake scores --limit 20
  snake scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse sessions in a full-screen table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to list")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	db, hasHistory := store.(*storage.Store)

	if flagInteractive {
		if !hasHistory {
			fail("the session history needs storage.backend: sqlite")
		}
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(db, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	high, err := store.HighScore()
	if err != nil {
		store.Close()
		fail("could not read high score: %v", err)
	}

	fmt.Println("Snake - High Score")
	fmt.Println()
	fmt.Printf("ALL-TIME HIGH SCORE: %d\n", high)

	if !hasHistory {
		return
	}

	stats, err := db.Stats()
	if err == nil && stats.Games > 0 {
		fmt.Printf("Games: %d  Average: %.1f  Best recorded run: %d  Last played: %s\n",
			stats.Games, stats.AvgScore, stats.BestRun, stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	sessions, err := db.TopSessions(flagLimit)
	if err != nil {
		store.Close()
		fail("could not retrieve sessions: %v", err)
	}
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-5s  %s\n", "Rank", "Score", "Start", "Length", "Cause", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-5s  %s\n", "----", "-----", "-----", "------", "-----", "----")

	for i, s := range sessions {
		fmt.Printf("  %-4d  %-6d  %-5d  %-6d  %-5s  %s\n",
			i+1, s.Score, s.StartingSegments, s.Length, s.Cause, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
