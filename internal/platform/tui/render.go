package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/feudal-seeds/internal/history"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	statusStyles = map[history.Outcome]lipgloss.Style{
		history.OutcomeIncomplete: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		history.OutcomeWon:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		history.OutcomeLost:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// RenderHistory draws entries as a bordered table for non-interactive
// output. Row numbers start at 0 and match history list indexes.
func RenderHistory(entries []history.Entry, filter history.Filter, width int) string {
	title := headerStyle.Render(fmt.Sprintf("Seed History - %s", filter))
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No seeds in history yet."))
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", e.Seed),
			fmt.Sprintf("%s, %s, %s", e.MapSize, e.Density, e.BotIntelligence),
			fmt.Sprintf("%d", e.StartingPosition),
			e.Outcome.String(),
			e.PlayedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Seed", "Parameters", "Pos", "Status", "Played").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 && row >= 0 && row < len(entries) {
				return statusStyles[entries[row].Outcome].Padding(0, 1)
			}
			return cellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}
