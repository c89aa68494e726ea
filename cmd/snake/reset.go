package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagKeepHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset-high-score",
	Short: "Reset the all-time high score to 0",
	Long: `Reset the stored all-time high score to 0. With the sqlite backend the
session history is cleared too unless --keep-history is given.`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagKeepHistory, "keep-history", false, "Keep recorded sessions (sqlite backend)")
}

// historyClearer is implemented by stores that keep finished sessions.
type historyClearer interface {
	ClearSessions() error
}

func runReset(_ *cobra.Command, _ []string) {
	store := openStore(loadConfig())
	defer store.Close()

	if err := store.ResetHighScore(); err != nil {
		store.Close()
		fail("could not reset high score: %v", err)
	}

	if hc, ok := store.(historyClearer); ok && !flagKeepHistory {
		if err := hc.ClearSessions(); err != nil {
			store.Close()
			fail("could not clear sessions: %v", err)
		}
	}

	fmt.Println("High score reset to 0.")
}
