package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.twenty48/config.yaml -> ./configs/twenty48.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// A custom path is authoritative; failures there are errors.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.fillDefaults(), nil
	}

	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.fillDefaults(), nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "twenty48.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.fillDefaults(), nil
		}
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // fall back to hardcoded if embed fails
	}
	return cfg.fillDefaults(), nil
}

// userConfigPath returns the per-user config location, empty if the home
// directory is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".twenty48", "config.yaml")
}

// fillDefaults replaces zero values with the built-in defaults, so a
// partial override file only needs the keys it changes.
func (c Config) fillDefaults() Config {
	d := Default()

	if c.Game.WinTarget <= 0 {
		c.Game.WinTarget = d.Game.WinTarget
	}
	if c.Game.SpawnFourChance <= 0 || c.Game.SpawnFourChance >= 1 {
		c.Game.SpawnFourChance = d.Game.SpawnFourChance
	}
	if c.Animation.SlideTicks <= 0 {
		c.Animation.SlideTicks = d.Animation.SlideTicks
	}
	if c.Animation.MergeTicks <= 0 {
		c.Animation.MergeTicks = d.Animation.MergeTicks
	}
	if c.Animation.SpawnTicks <= 0 {
		c.Animation.SpawnTicks = d.Animation.SpawnTicks
	}
	if c.Animation.ShakeTicks <= 0 {
		c.Animation.ShakeTicks = d.Animation.ShakeTicks
	}

	return c
}
