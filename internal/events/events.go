// Package events carries notifications from the new-game flow to whatever
// consumes them, such as the map generator.
package events

import (
	"errors"

	"github.com/vovakirdan/feudal-seeds/internal/core"
)

// ErrEmptyParams is returned when publishing a RegenerateMapEvent whose
// parameters were never built.
var ErrEmptyParams = errors.New("events: regenerate map event without parameters")

// Event is implemented by every event published on a Bus.
type Event interface {
	event()
}

// RegenerateMapEvent asks for the map to be generated again, because the
// parameters changed, the player retries a seed or starts a new game.
type RegenerateMapEvent struct {
	Params core.GameParameters
}

func (RegenerateMapEvent) event() {}

func (e RegenerateMapEvent) validate() error {
	if len(e.Params.Players()) == 0 {
		return ErrEmptyParams
	}
	return nil
}
