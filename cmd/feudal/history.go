package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/feudal-seeds/internal/core"
	"github.com/vovakirdan/feudal-seeds/internal/history"
	"github.com/vovakirdan/feudal-seeds/internal/platform/tui"
)

var flagFilter string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, browse, remove and clear played seeds",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the seed history",
	Long: `Print played seeds, most recent first.

Filters:
  all        - every game (default)
  completed  - finished games
  won        - games you won

Examples:
  feudal history list
  feudal history list --filter won`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the history interactively",
	Long: `Open the seed history stage. Pick a row and press enter to play that
seed again, d to delete it, C to clear the history, tab to change filter.`,
	Args: cobra.NoArgs,
	RunE: runHistoryBrowse,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove one history row",
	Long: `Remove the row at <index> of 'feudal history list' (same --filter).

Examples:
  feudal history remove 0
  feudal history remove 2 --filter completed`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every played seed",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().StringVar(&flagFilter, "filter", "all", "Filter: all, completed, won")
	historyRemoveCmd.Flags().StringVar(&flagFilter, "filter", "all", "Filter: all, completed, won")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyBrowseCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func parseFilter(name string) (history.Filter, error) {
	switch strings.ToLower(name) {
	case "", "all":
		return history.FilterAll, nil
	case "completed":
		return history.FilterCompleted, nil
	case "won":
		return history.FilterWon, nil
	default:
		return history.FilterAll, fmt.Errorf("unknown filter %q (want all, completed or won)", name)
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	filter, err := parseFilter(flagFilter)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	width := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, _ = terminalSize()
	}
	fmt.Println(tui.RenderHistory(app.History().Filter(filter), filter, width))
	return nil
}

func runHistoryBrowse(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	width, height := terminalSize()
	picked, err := tui.RunHistoryStage(app.History(), width, height)
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	entry := *picked
	return startGame(app.Bus, func() (core.GameParameters, error) { return app.Replay(entry) })
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	filter, err := parseFilter(flagFilter)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	entries := app.History().Filter(filter)
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("no history row %d (%d rows)", index, len(entries))
	}

	entry := entries[index]
	if status := app.History().Remove(entry); status != history.StatusOK {
		fmt.Fprintf(os.Stderr, "Warning: row not removed (%s)\n", status)
		return nil
	}
	fmt.Printf("Removed: %s\n", entry)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if status := app.History().Clear(); status != history.StatusOK {
		fmt.Fprintf(os.Stderr, "Warning: history not cleared (%s)\n", status)
		return nil
	}
	fmt.Println("Seed history cleared.")
	return nil
}
