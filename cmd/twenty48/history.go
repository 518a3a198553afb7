package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okazmirenko/twenty48/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent game results",
	Long: `Display recently finished games, most recent first. The last
` + fmt.Sprint(storage.HistoryLimit) + ` games are retained.

Examples:
  twenty48 history
  twenty48 history --limit 10`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", storage.HistoryLimit, "Maximum number of games to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.History(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Game History")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Println("Play 'twenty48 play' to record the first one!")
		return
	}

	fmt.Printf("  %-19s  %-8s  %-8s  %-6s  %-8s  %s\n", "Date", "Score", "Max", "Moves", "Duration", "Result")
	fmt.Printf("  %-19s  %-8s  %-8s  %-6s  %-8s  %s\n", "----", "-----", "---", "-----", "--------", "------")

	for _, r := range results {
		result := "lost"
		if r.Won {
			result = "won"
		}
		duration := fmt.Sprintf("%d:%02d", r.DurationSeconds/60, r.DurationSeconds%60)
		fmt.Printf("  %-19s  %-8d  %-8d  %-6d  %-8s  %s\n",
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.FinalScore, r.HighestTile, r.MoveCount, duration, result)
	}
}
