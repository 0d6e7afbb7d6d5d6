// Package core holds the value types shared by the new-game flow:
// bot intelligence and map enums, the player roster and GameParameters.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a constructor precondition is violated.
var ErrInvalidArgument = errors.New("invalid argument")

// PlayerType tells whether a roster slot is controlled locally by a human or a bot.
type PlayerType int

const (
	LocalPlayer PlayerType = iota
	LocalBot
)

func (t PlayerType) String() string {
	switch t {
	case LocalPlayer:
		return "LOCAL_PLAYER"
	case LocalBot:
		return "LOCAL_BOT"
	default:
		return "Unknown"
	}
}

// Player is one slot of the roster.
type Player struct {
	Index int
	Type  PlayerType
}

func (p Player) String() string {
	return fmt.Sprintf("Player{%d %s}", p.Index, p.Type)
}

// GameParameters describes the map to generate and who plays on it.
// Values are immutable once built; use NewGameParameters.
type GameParameters struct {
	players         []Player
	seed            int64
	landMass        int
	density         float64
	botIntelligence Intelligence
}

// NewGameParameters builds parameters for a game with one local human at
// humanPlayerIndex and numberOfBotPlayers bots filling every other slot.
func NewGameParameters(humanPlayerIndex int, seed int64, landMass int, density float64,
	botIntelligence Intelligence, numberOfBotPlayers int) (GameParameters, error) {
	if numberOfBotPlayers < 0 {
		return GameParameters{}, fmt.Errorf("core: negative bot player count %d: %w", numberOfBotPlayers, ErrInvalidArgument)
	}
	if humanPlayerIndex < 0 || humanPlayerIndex > numberOfBotPlayers {
		return GameParameters{}, fmt.Errorf("core: human player index %d outside [0, %d]: %w",
			humanPlayerIndex, numberOfBotPlayers, ErrInvalidArgument)
	}
	if landMass <= 0 {
		return GameParameters{}, fmt.Errorf("core: land mass must be positive, got %d: %w", landMass, ErrInvalidArgument)
	}
	if !botIntelligence.Valid() {
		return GameParameters{}, fmt.Errorf("core: %s: %w", botIntelligence, ErrInvalidArgument)
	}

	players := make([]Player, numberOfBotPlayers+1)
	for i := range players {
		players[i] = Player{Index: i, Type: LocalBot}
	}
	players[humanPlayerIndex].Type = LocalPlayer

	return GameParameters{
		players:         players,
		seed:            seed,
		landMass:        landMass,
		density:         density,
		botIntelligence: botIntelligence,
	}, nil
}

// Players returns a copy of the roster.
func (p GameParameters) Players() []Player {
	out := make([]Player, len(p.players))
	copy(out, p.players)
	return out
}

// HumanPlayerIndex returns the roster index of the local human, or -1 for
// the zero value.
func (p GameParameters) HumanPlayerIndex() int {
	for _, pl := range p.players {
		if pl.Type == LocalPlayer {
			return pl.Index
		}
	}
	return -1
}

func (p GameParameters) Seed() int64 { return p.seed }

func (p GameParameters) LandMass() int { return p.landMass }

func (p GameParameters) Density() float64 { return p.density }

func (p GameParameters) BotIntelligence() Intelligence { return p.botIntelligence }

func (p GameParameters) String() string {
	parts := make([]string, len(p.players))
	for i, pl := range p.players {
		parts[i] = pl.String()
	}
	return fmt.Sprintf("GameParameters{players=[%s], seed=%d, landMass=%d, density=%g, botIntelligence=%s}",
		strings.Join(parts, ", "), p.seed, p.landMass, p.density, p.botIntelligence)
}
