// twenty48 is an animated 2048 for the terminal.
//
// Usage:
//
//	twenty48 play       - Play (resumes an unfinished game by default)
//	twenty48 serve      - Start SSH server for remote play
//	twenty48 history    - Show recent game results
//	twenty48 stats      - Show aggregate statistics
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.twenty48/twenty48.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "twenty48",
	Short: "twenty48 - Animated 2048 in your terminal",
	Long: `twenty48 is a terminal rendition of 2048 with smooth sliding,
merging, and spawning animations.

Available commands:
  play     - Play the game (resumes an unfinished game)
  serve    - Start SSH server for remote play
  history  - View recent game results
  stats    - View aggregate statistics

Examples:
  twenty48 play
  twenty48 play --new --target 4096
  twenty48 serve --ssh :2222
  twenty48 history
  twenty48 stats`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.twenty48/twenty48.db", "Path to game database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}
