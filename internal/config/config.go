// Package config provides YAML-based application configuration: where
// preferences are stored, how much to log, and how new-game settings map
// onto map generation parameters.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/core"
)

// Config is the whole application configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Generation GenerationConfig `yaml:"generation"`
}

// StorageConfig locates the preference database.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" is expanded; ":memory:" keeps nothing on disk
}

// LoggingConfig controls the root logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// GenerationConfig turns new-game preferences into GameParameters.
type GenerationConfig struct {
	BotPlayers int                `yaml:"bot_players"`
	LandMass   map[string]int     `yaml:"land_mass"` // tiles per MapSize name
	Density    map[string]float64 `yaml:"density"`   // generator density per Density name
}

// LandMass returns the tile count for a map size.
func (c Config) LandMass(size core.MapSize) (int, error) {
	v, ok := c.Generation.LandMass[size.String()]
	if !ok {
		return 0, fmt.Errorf("config: no land mass for map size %s", size)
	}
	return v, nil
}

// DensityValue returns the generator density for a density tag.
func (c Config) DensityValue(d core.Density) (float64, error) {
	v, ok := c.Generation.Density[d.String()]
	if !ok {
		return 0, fmt.Errorf("config: no density value for %s", d)
	}
	return v, nil
}

// LogLevel parses Logging.Level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Logging.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: logging level %q: %w", c.Logging.Level, err)
	}
	return lvl, nil
}

// Validate checks that every enum variant has a mapping and counts are sane.
func (c Config) Validate() error {
	var errs []error

	if c.Storage.Path == "" {
		errs = append(errs, errors.New("config: storage.path is empty"))
	}
	if c.Generation.BotPlayers < 0 {
		errs = append(errs, fmt.Errorf("config: generation.bot_players must not be negative, got %d", c.Generation.BotPlayers))
	}
	for _, size := range core.MapSizes() {
		v, err := c.LandMass(size)
		if err != nil {
			errs = append(errs, err)
		} else if v <= 0 {
			errs = append(errs, fmt.Errorf("config: land mass for %s must be positive, got %d", size, v))
		}
	}
	for _, d := range core.Densities() {
		if _, err := c.DensityValue(d); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
