package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/feudal-seeds/internal/core"
)

// Outcome is the lifecycle state of a played seed.
// INCOMPLETE is the only non-terminal state.
type Outcome int

const (
	OutcomeIncomplete Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIncomplete:
		return "Incomplete"
	case OutcomeWon:
		return "Won"
	case OutcomeLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Entry is one played game configuration and its result.
type Entry struct {
	Seed             int64
	MapSize          core.MapSize
	Density          core.Density
	BotIntelligence  core.Intelligence
	StartingPosition int
	PlayedAt         time.Time
	Outcome          Outcome
}

// NewEntry creates an INCOMPLETE entry. playedAt is truncated to the
// millisecond precision used on disk.
func NewEntry(seed int64, mapSize core.MapSize, density core.Density, ai core.Intelligence,
	startingPosition int, playedAt time.Time) Entry {
	return Entry{
		Seed:             seed,
		MapSize:          mapSize,
		Density:          density,
		BotIntelligence:  ai,
		StartingPosition: startingPosition,
		PlayedAt:         time.UnixMilli(playedAt.UnixMilli()),
		Outcome:          OutcomeIncomplete,
	}
}

// Completed reports whether the game reached an end.
func (e Entry) Completed() bool {
	return e.Outcome != OutcomeIncomplete
}

// Won reports the result. ok is false while the game is incomplete.
func (e Entry) Won() (won, ok bool) {
	switch e.Outcome {
	case OutcomeWon:
		return true, true
	case OutcomeLost:
		return false, true
	default:
		return false, false
	}
}

// Complete moves an INCOMPLETE entry to WON or LOST.
// Finished entries are frozen; it returns false and changes nothing.
func (e *Entry) Complete(won bool) bool {
	if e.Completed() {
		return false
	}
	if won {
		e.Outcome = OutcomeWon
	} else {
		e.Outcome = OutcomeLost
	}
	return true
}

// SameGame compares the configuration only: seed, map size, density,
// bot intelligence and starting position. Used for deduplication.
func (e Entry) SameGame(o Entry) bool {
	return e.Seed == o.Seed &&
		e.MapSize == o.MapSize &&
		e.Density == o.Density &&
		e.BotIntelligence == o.BotIntelligence &&
		e.StartingPosition == o.StartingPosition
}

// Equal additionally compares the outcome and the timestamp, at the
// millisecond precision kept on disk.
func (e Entry) Equal(o Entry) bool {
	return e.SameGame(o) &&
		e.Outcome == o.Outcome &&
		e.PlayedAt.UnixMilli() == o.PlayedAt.UnixMilli()
}

// Validate reports why e cannot be stored and read back unchanged.
func (e Entry) Validate() error {
	var errs []error
	if !e.MapSize.Valid() {
		errs = append(errs, fmt.Errorf("unknown map size %d", int(e.MapSize)))
	}
	if !e.Density.Valid() {
		errs = append(errs, fmt.Errorf("unknown density %d", int(e.Density)))
	}
	if !e.BotIntelligence.Valid() {
		errs = append(errs, fmt.Errorf("unknown bot intelligence %d", int(e.BotIntelligence)))
	}
	if e.StartingPosition < 0 {
		errs = append(errs, fmt.Errorf("negative starting position %d", e.StartingPosition))
	}
	switch e.Outcome {
	case OutcomeIncomplete, OutcomeWon, OutcomeLost:
	default:
		errs = append(errs, fmt.Errorf("unknown outcome %d", int(e.Outcome)))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("history: invalid entry for seed %d: %w", e.Seed, errors.Join(ErrDecode, err))
	}
	return nil
}

func (e Entry) String() string {
	var result string
	switch e.Outcome {
	case OutcomeWon:
		result = "Victory"
	case OutcomeLost:
		result = "Defeat"
	default:
		result = "Incomplete"
	}

	return fmt.Sprintf("Seed %d - %s, %s, %s - %s",
		e.Seed,
		e.MapSize.DisplayName(),
		e.Density.DisplayName(),
		e.BotIntelligence.DisplayName(),
		result,
	)
}
