// Package config provides YAML-based configuration for the game: rules,
// animation timing, and persistence paths, with an embedded default.
package config

import (
	"github.com/okazmirenko/twenty48/internal/anim"
	"github.com/okazmirenko/twenty48/internal/game"
)

// Config is the full application configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Animation AnimationConfig `yaml:"animation"`
}

// GameConfig defines the rules parameters.
type GameConfig struct {
	WinTarget       int     `yaml:"win_target"`
	SpawnFourChance float64 `yaml:"spawn_four_chance"`
}

// AnimationConfig defines per-phase durations in simulation ticks
// (at 60 ticks per second).
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"`
	MergeTicks int `yaml:"merge_ticks"`
	SpawnTicks int `yaml:"spawn_ticks"`
	ShakeTicks int `yaml:"shake_ticks"`
}

// SessionConfig converts the loaded configuration into the session's
// config, leaving the seed for the caller to fill in.
func (c Config) SessionConfig() game.Config {
	return game.Config{
		WinTarget: c.Game.WinTarget,
		FourProb:  c.Game.SpawnFourChance,
		Durations: anim.Durations{
			SlideTicks: c.Animation.SlideTicks,
			MergeTicks: c.Animation.MergeTicks,
			SpawnTicks: c.Animation.SpawnTicks,
			ShakeTicks: c.Animation.ShakeTicks,
		},
	}
}
