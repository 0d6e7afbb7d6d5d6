package config

import (
	_ "embed"
)

//go:embed defaults/feudal.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.feudal/preferences.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Generation: GenerationConfig{
			BotPlayers: 5,
			LandMass: map[string]int{
				"SMALL":   150,
				"MEDIUM":  250,
				"LARGE":   400,
				"XLARGE":  700,
				"XXLARGE": 1000,
			},
			Density: map[string]float64{
				"LOOSE":  -3,
				"MEDIUM": 0,
				"DENSE":  3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
