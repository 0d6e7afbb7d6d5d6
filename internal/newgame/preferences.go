// Package newgame persists the settings the player chose when last
// starting a new game.
package newgame

import (
	"fmt"

	"github.com/vovakirdan/feudal-seeds/internal/core"
)

// Preferences are the last-used new-game settings.
type Preferences struct {
	Seed             int64
	BotIntelligence  core.Intelligence
	MapSize          core.MapSize
	Density          core.Density
	StartingPosition int // roster index of the human player
}

func (p Preferences) String() string {
	return fmt.Sprintf("NewGamePreferences{seed=%d, botIntelligence=%s, mapSize=%s, density=%s, startingPosition=%d}",
		p.Seed, p.BotIntelligence, p.MapSize, p.Density, p.StartingPosition)
}
