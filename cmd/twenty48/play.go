package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okazmirenko/twenty48/internal/config"
	"github.com/okazmirenko/twenty48/internal/core"
	"github.com/okazmirenko/twenty48/internal/game"
	"github.com/okazmirenko/twenty48/internal/platform/tui"
	"github.com/okazmirenko/twenty48/internal/storage"
)

var (
	flagConfig string
	flagNew    bool
	flagTarget int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing. An unfinished game from the last run resumes
automatically; pass --new to discard it.

Controls:
  Arrows/WASD - Move tiles
  N           - New game
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit (saves the game for next time)

Examples:
  twenty48 play
  twenty48 play --new
  twenty48 play --target 4096
  twenty48 play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Discard any saved game and start fresh")
	playCmd.Flags().IntVar(&flagTarget, "target", 0, "Override the winning tile value")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	gameCfg := cfg.SessionConfig()
	if flagTarget > 0 {
		gameCfg.WinTarget = flagTarget
	}

	// Terminal size; fall back to 80x24 when not a TTY.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtimeCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		// Continue without persistence; the game still works.
		store = nil
	}

	resume := loadResume(store)

	runErr := tui.Run(gameCfg, store, runtimeCfg, resume)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadResume fetches the saved game, honoring --new. A finished or
// unreadable snapshot starts fresh.
func loadResume(store *storage.Store) *game.Snapshot {
	if store == nil {
		return nil
	}
	if flagNew {
		//nolint:errcheck // Best-effort cleanup
		store.ClearSnapshot()
		return nil
	}

	snap, err := store.LoadSnapshot()
	if err != nil || snap == nil {
		return nil
	}
	if snap.GameOver {
		//nolint:errcheck
		store.ClearSnapshot()
		return nil
	}
	return snap
}
