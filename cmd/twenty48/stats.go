package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okazmirenko/twenty48/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Long: `Display aggregate statistics over the retained game history.

Examples:
  twenty48 stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	st, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Statistics")
	fmt.Println()

	if st.GamesPlayed == 0 {
		fmt.Println("No finished games yet.")
		return
	}

	winRate := float64(st.Wins) / float64(st.GamesPlayed) * 100

	fmt.Printf("  Games played:  %d\n", st.GamesPlayed)
	fmt.Printf("  Wins:          %d (%.0f%%)\n", st.Wins, winRate)
	fmt.Printf("  Best score:    %d\n", st.BestScore)
	fmt.Printf("  Highest tile:  %d\n", st.MaxTileEver)
	if st.FastestWinSeconds > 0 {
		fmt.Printf("  Fastest win:   %d:%02d\n", st.FastestWinSeconds/60, st.FastestWinSeconds%60)
	}
}
