package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/feudal-seeds/internal/core"
	"github.com/vovakirdan/feudal-seeds/internal/events"
	"github.com/vovakirdan/feudal-seeds/internal/history"
	"github.com/vovakirdan/feudal-seeds/internal/newgame"
)

var (
	flagSeed     int64
	flagSize     string
	flagDensity  string
	flagAI       string
	flagPosition int
	flagWon      bool
	flagLost     bool
)

var newgameCmd = &cobra.Command{
	Use:   "newgame",
	Short: "Show, start and finish games",
}

var newgameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last-used new-game settings",
	Args:  cobra.NoArgs,
	RunE:  runNewgameShow,
}

var newgameStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a game and record its seed",
	Long: `Start a new game from the last-used settings, overridden by any flags.
The settings are remembered, the seed is added to the history and the map
is regenerated.

Map sizes:     SMALL, MEDIUM, LARGE, XLARGE, XXLARGE
Densities:     LOOSE, MEDIUM, DENSE
Intelligence:  LEVEL_1, LEVEL_2, LEVEL_3, LEVEL_4

Examples:
  feudal newgame start
  feudal newgame start --seed 42 --size LARGE
  feudal newgame start --density DENSE --ai LEVEL_4 --position 2`,
	Args: cobra.NoArgs,
	RunE: runNewgameStart,
}

var newgameFinishCmd = &cobra.Command{
	Use:   "finish <seed>",
	Short: "Record the result of a game",
	Long: `Mark the most recent unfinished game on <seed> as won or lost.

Examples:
  feudal newgame finish 1700000000000 --won
  feudal newgame finish 42 --lost`,
	Args: cobra.ExactArgs(1),
	RunE: runNewgameFinish,
}

func init() {
	newgameStartCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Map seed")
	newgameStartCmd.Flags().StringVar(&flagSize, "size", "", "Map size")
	newgameStartCmd.Flags().StringVar(&flagDensity, "density", "", "Map density")
	newgameStartCmd.Flags().StringVar(&flagAI, "ai", "", "Bot intelligence")
	newgameStartCmd.Flags().IntVar(&flagPosition, "position", 0, "Starting position (0-based)")

	newgameFinishCmd.Flags().BoolVar(&flagWon, "won", false, "The game was won")
	newgameFinishCmd.Flags().BoolVar(&flagLost, "lost", false, "The game was lost")
	newgameFinishCmd.MarkFlagsMutuallyExclusive("won", "lost")
	newgameFinishCmd.MarkFlagsOneRequired("won", "lost")

	newgameCmd.AddCommand(newgameShowCmd)
	newgameCmd.AddCommand(newgameStartCmd)
	newgameCmd.AddCommand(newgameFinishCmd)
}

func runNewgameShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.LastPreferences()
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	printPreferences(p)
	return nil
}

func runNewgameStart(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.LastPreferences()
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	if err := applyOverrides(cmd, &p); err != nil {
		return err
	}

	return startGame(app.Bus, func() (core.GameParameters, error) { return app.StartGame(p) })
}

// startGame runs start and reports the map regeneration it triggered.
func startGame(bus *events.Bus, start func() (core.GameParameters, error)) error {
	regen, unsubscribe := bus.Subscribe(1)
	defer unsubscribe()

	params, err := start()
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	select {
	case ev := <-regen:
		if e, ok := ev.(events.RegenerateMapEvent); ok {
			fmt.Printf("Map regeneration requested for seed %d\n\n", e.Params.Seed())
		}
	default:
	}
	printParameters(params)
	return nil
}

func runNewgameFinish(cmd *cobra.Command, args []string) error {
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q", args[0])
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if status := app.FinishGame(seed, flagWon); status != history.StatusOK {
		fmt.Fprintf(os.Stderr, "Warning: result not recorded (%s)\n", status)
		return nil
	}

	result := "lost"
	if flagWon {
		result = "won"
	}
	fmt.Printf("Seed %d recorded as %s.\n", seed, result)
	return nil
}

// applyOverrides replaces the settings whose flags were given.
func applyOverrides(cmd *cobra.Command, p *newgame.Preferences) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		p.Seed = flagSeed
	}
	if flags.Changed("size") {
		v, err := core.ParseMapSize(strings.ToUpper(flagSize))
		if err != nil {
			return err
		}
		p.MapSize = v
	}
	if flags.Changed("density") {
		v, err := core.ParseDensity(strings.ToUpper(flagDensity))
		if err != nil {
			return err
		}
		p.Density = v
	}
	if flags.Changed("ai") {
		v, err := core.ParseIntelligence(strings.ToUpper(flagAI))
		if err != nil {
			return err
		}
		p.BotIntelligence = v
	}
	if flags.Changed("position") {
		p.StartingPosition = flagPosition
	}
	return nil
}

func printPreferences(p newgame.Preferences) {
	fmt.Println("New game settings")
	fmt.Println()
	fmt.Printf("  %-18s %d\n", "Seed", p.Seed)
	fmt.Printf("  %-18s %s\n", "Map size", p.MapSize)
	fmt.Printf("  %-18s %s\n", "Density", p.Density)
	fmt.Printf("  %-18s %s\n", "Bot intelligence", p.BotIntelligence)
	fmt.Printf("  %-18s %d\n", "Starting position", p.StartingPosition)
}

func printParameters(params core.GameParameters) {
	fmt.Println("Game parameters")
	fmt.Println()
	fmt.Printf("  %-18s %d\n", "Seed", params.Seed())
	fmt.Printf("  %-18s %d\n", "Land mass", params.LandMass())
	fmt.Printf("  %-18s %g\n", "Density", params.Density())
	fmt.Printf("  %-18s %s\n", "Bot intelligence", params.BotIntelligence())
	fmt.Println()
	fmt.Println("  Players:")
	for _, pl := range params.Players() {
		who := "bot"
		if pl.Type == core.LocalPlayer {
			who = "you"
		}
		fmt.Printf("    %d  %s\n", pl.Index, who)
	}
}
