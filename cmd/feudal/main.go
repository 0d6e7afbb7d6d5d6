// feudal manages the new-game settings and seed history of Feudal Tactics
// style games from the terminal.
//
// Usage:
//
//	feudal newgame show             - Show the last-used new-game settings
//	feudal newgame start [flags]    - Start a game and record its seed
//	feudal newgame finish <seed>    - Record the result of a game
//	feudal history list             - Print the seed history
//	feudal history browse           - Browse the history interactively
//	feudal history remove <index>   - Remove one history row
//	feudal history clear            - Forget every played seed
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.feudal, ./configs)
//	--db <path>         - Override the preference database path
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/feudal-seeds/internal/config"
	"github.com/vovakirdan/feudal-seeds/internal/launcher"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "feudal",
	Short: "Feudal - new-game settings and seed history",
	Long: `Feudal keeps the settings you used for your last game and a history
of the seeds you played, with their results.

Available commands:
  newgame  - Show, start and finish games
  history  - List, browse, remove and clear played seeds

Examples:
  feudal newgame start --size LARGE --density DENSE
  feudal newgame finish 1700000000000 --won
  feudal history list --filter won
  feudal history browse`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to preference database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newgameCmd)
	rootCmd.AddCommand(historyCmd)
}

// openApp loads the configuration and opens the preference database.
// The caller closes the App.
func openApp() (*launcher.App, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "feudal",
		Level:           level,
	})

	app, err := launcher.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	return app, nil
}
