package newgame

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/core"
	"github.com/vovakirdan/feudal-seeds/internal/storage"
)

// PreferencesName is the backend namespace holding the preferences.
const PreferencesName = "newGamePreferences"

const (
	keySeed             = "seed"
	keyBotIntelligence  = "botIntelligence"
	keyMapSize          = "mapSize"
	keyDensity          = "density"
	keyStartingPosition = "startingPosition"
)

// Store loads and saves the last-used Preferences. Enums are stored by
// ordinal; unknown ordinals read back as the first variant.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for the default seed.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store over the newGamePreferences backend.
func NewStore(backend storage.Backend, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{backend: backend, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes all five settings and flushes before returning.
func (s *Store) Save(p Preferences) error {
	if p.StartingPosition < 0 || p.StartingPosition > math.MaxInt32 {
		return fmt.Errorf("newgame: starting position %d out of range: %w", p.StartingPosition, core.ErrInvalidArgument)
	}

	puts := []func() error{
		func() error { return s.backend.PutLong(keySeed, p.Seed) },
		func() error { return s.backend.PutInteger(keyBotIntelligence, int32(p.BotIntelligence)) },
		func() error { return s.backend.PutInteger(keyMapSize, int32(p.MapSize)) },
		func() error { return s.backend.PutInteger(keyDensity, int32(p.Density)) },
		func() error { return s.backend.PutInteger(keyStartingPosition, int32(p.StartingPosition)) },
	}
	for _, put := range puts {
		if err := put(); err != nil {
			return fmt.Errorf("newgame: save: %w", err)
		}
	}
	if err := s.backend.Flush(); err != nil {
		return fmt.Errorf("newgame: save: %w", err)
	}

	s.logger.Debug("saved new game preferences", "seed", p.Seed)
	return nil
}

// Load reads the saved settings. Missing keys fall back to the current
// time as seed, the first variant of every enum and starting position 0.
func (s *Store) Load() (Preferences, error) {
	var p Preferences

	seed, err := s.backend.GetLong(keySeed, s.now().UnixMilli())
	if err != nil {
		return Preferences{}, fmt.Errorf("newgame: load %s: %w", keySeed, err)
	}
	p.Seed = seed

	ord, err := s.getOrdinal(keyBotIntelligence)
	if err != nil {
		return Preferences{}, err
	}
	if v, ok := core.IntelligenceFromOrdinal(ord); ok {
		p.BotIntelligence = v
	} else {
		s.clamped(keyBotIntelligence, ord)
	}

	if ord, err = s.getOrdinal(keyMapSize); err != nil {
		return Preferences{}, err
	}
	if v, ok := core.MapSizeFromOrdinal(ord); ok {
		p.MapSize = v
	} else {
		s.clamped(keyMapSize, ord)
	}

	if ord, err = s.getOrdinal(keyDensity); err != nil {
		return Preferences{}, err
	}
	if v, ok := core.DensityFromOrdinal(ord); ok {
		p.Density = v
	} else {
		s.clamped(keyDensity, ord)
	}

	if ord, err = s.getOrdinal(keyStartingPosition); err != nil {
		return Preferences{}, err
	}
	if ord < 0 {
		s.clamped(keyStartingPosition, ord)
		ord = 0
	}
	p.StartingPosition = ord

	return p, nil
}

func (s *Store) getOrdinal(key string) (int, error) {
	v, err := s.backend.GetInteger(key, 0)
	if err != nil {
		return 0, fmt.Errorf("newgame: load %s: %w", key, err)
	}
	return int(v), nil
}

func (s *Store) clamped(key string, ord int) {
	s.logger.Warn("stored preference out of range, using default", "key", key, "value", ord)
}
