package config

import (
	_ "embed"

	"github.com/okazmirenko/twenty48/internal/anim"
	"github.com/okazmirenko/twenty48/internal/engine"
)

//go:embed defaults/twenty48.yaml
var defaultYAML []byte

// Default returns the built-in configuration: classic rules and the
// standard animation timing.
func Default() Config {
	d := anim.DefaultDurations()
	return Config{
		Game: GameConfig{
			WinTarget:       engine.DefaultWinTarget,
			SpawnFourChance: engine.DefaultFourProb,
		},
		Animation: AnimationConfig{
			SlideTicks: d.SlideTicks,
			MergeTicks: d.MergeTicks,
			SpawnTicks: d.SpawnTicks,
			ShakeTicks: d.ShakeTicks,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
