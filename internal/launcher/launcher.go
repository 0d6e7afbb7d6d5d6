// Package launcher wires the preference stores, the history and the event
// bus together and runs the new-game flow: remember the settings, derive
// the game parameters, record the seed, and ask for a map.
package launcher

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/config"
	"github.com/vovakirdan/feudal-seeds/internal/core"
	"github.com/vovakirdan/feudal-seeds/internal/events"
	"github.com/vovakirdan/feudal-seeds/internal/history"
	"github.com/vovakirdan/feudal-seeds/internal/newgame"
)

// Deps are the collaborators a Launcher needs.
type Deps struct {
	Preferences *newgame.Store
	History     *history.Store
	Bus         *events.Bus
	Config      config.Config
	Logger      *log.Logger
	Now         func() time.Time // defaults to time.Now
}

// Launcher starts and finishes games.
type Launcher struct {
	prefs   *newgame.Store
	history *history.Store
	bus     *events.Bus
	cfg     config.Config
	logger  *log.Logger
	now     func() time.Time
}

// New creates a launcher.
func New(d Deps) *Launcher {
	l := &Launcher{
		prefs:   d.Preferences,
		history: d.History,
		bus:     d.Bus,
		cfg:     d.Config,
		logger:  d.Logger,
		now:     d.Now,
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Parameters derives the game parameters for p without side effects.
func (l *Launcher) Parameters(p newgame.Preferences) (core.GameParameters, error) {
	landMass, err := l.cfg.LandMass(p.MapSize)
	if err != nil {
		return core.GameParameters{}, fmt.Errorf("launcher: %w", err)
	}
	density, err := l.cfg.DensityValue(p.Density)
	if err != nil {
		return core.GameParameters{}, fmt.Errorf("launcher: %w", err)
	}

	params, err := core.NewGameParameters(p.StartingPosition, p.Seed, landMass, density,
		p.BotIntelligence, l.cfg.Generation.BotPlayers)
	if err != nil {
		return core.GameParameters{}, fmt.Errorf("launcher: %w", err)
	}
	return params, nil
}

// StartGame remembers p as the last-used settings, records the seed in the
// history and publishes a RegenerateMapEvent. Invalid settings are
// rejected before anything is written. Failing to save the settings or
// the history does not stop the game.
func (l *Launcher) StartGame(p newgame.Preferences) (core.GameParameters, error) {
	params, err := l.Parameters(p)
	if err != nil {
		return core.GameParameters{}, err
	}

	if err := l.prefs.Save(p); err != nil {
		l.logger.Warn("could not save new game preferences", "error", err)
	}

	entry := history.NewEntry(p.Seed, p.MapSize, p.Density, p.BotIntelligence, p.StartingPosition, l.now())
	l.history.Add(entry)

	if _, err := l.bus.Publish(events.RegenerateMapEvent{Params: params}); err != nil {
		return core.GameParameters{}, fmt.Errorf("launcher: %w", err)
	}

	l.logger.Info("starting game", "seed", p.Seed, "mapSize", p.MapSize, "density", p.Density,
		"botIntelligence", p.BotIntelligence, "startingPosition", p.StartingPosition)
	return params, nil
}

// Replay starts a new game with the configuration of a history entry.
func (l *Launcher) Replay(e history.Entry) (core.GameParameters, error) {
	return l.StartGame(newgame.Preferences{
		Seed:             e.Seed,
		BotIntelligence:  e.BotIntelligence,
		MapSize:          e.MapSize,
		Density:          e.Density,
		StartingPosition: e.StartingPosition,
	})
}

// FinishGame records the result of the game played on seed.
func (l *Launcher) FinishGame(seed int64, won bool) history.Status {
	status := l.history.UpdateOnCompletion(seed, won)
	if status == history.StatusOK {
		l.logger.Info("game finished", "seed", seed, "won", won)
	}
	return status
}

// LastPreferences returns the settings used for the previous game.
func (l *Launcher) LastPreferences() (newgame.Preferences, error) {
	return l.prefs.Load()
}

// History exposes the seed history store.
func (l *Launcher) History() *history.Store {
	return l.history
}
