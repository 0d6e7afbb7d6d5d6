package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/core"
)

// ErrDecode is wrapped by errors about malformed history documents.
var ErrDecode = errors.New("malformed seed history")

// wireEntry is the on-disk shape of one entry. Enums are stored by name so
// reordering a Go enum never changes the meaning of stored history.
type wireEntry struct {
	Seed             int64  `json:"seed"`
	MapSize          string `json:"mapSize"`
	Density          string `json:"density"`
	BotIntelligence  string `json:"botIntelligence"`
	StartingPosition int    `json:"startingPosition"`
	PlayedAt         int64  `json:"playedAt"`
	Completed        bool   `json:"completed"`
	Won              *bool  `json:"won"`
}

// decodeEntry mirrors wireEntry with pointers so absent fields are visible.
type decodeEntry struct {
	Seed             *int64  `json:"seed"`
	MapSize          *string `json:"mapSize"`
	Density          *string `json:"density"`
	BotIntelligence  *string `json:"botIntelligence"`
	StartingPosition *int    `json:"startingPosition"`
	PlayedAt         *int64  `json:"playedAt"`
	Completed        *bool   `json:"completed"`
	Won              *bool   `json:"won"`
}

// Encode renders entries as a JSON array, preserving order. An entry that
// would not decode back unchanged fails the whole call with ErrDecode.
func Encode(entries []Entry) (string, error) {
	out := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return "", err
		}
		w := wireEntry{
			Seed:             e.Seed,
			MapSize:          e.MapSize.String(),
			Density:          e.Density.String(),
			BotIntelligence:  e.BotIntelligence.String(),
			StartingPosition: e.StartingPosition,
			PlayedAt:         e.PlayedAt.UnixMilli(),
			Completed:        e.Completed(),
		}
		if won, ok := e.Won(); ok {
			w.Won = &won
		}
		out = append(out, w)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("history: encode: %w", err)
	}
	return string(data), nil
}

// Decode parses a history document. A malformed element is skipped with a
// warning and decoding continues; a malformed envelope yields an empty list
// and an error wrapping ErrDecode. An empty document is an empty history.
func Decode(doc string, logger *log.Logger) ([]Entry, error) {
	trimmed := bytes.TrimSpace([]byte(doc))
	if len(trimmed) == 0 {
		return []Entry{}, nil
	}
	if trimmed[0] != '[' {
		return []Entry{}, fmt.Errorf("history: top level is not an array: %w", ErrDecode)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return []Entry{}, fmt.Errorf("history: %w", errors.Join(ErrDecode, err))
	}

	entries := make([]Entry, 0, len(raw))
	for i, elem := range raw {
		e, err := decodeOne(elem)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping malformed seed history entry", "index", i, "error", err)
			}
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeOne(elem json.RawMessage) (Entry, error) {
	elem = bytes.TrimSpace(elem)
	if len(elem) == 0 || elem[0] != '{' {
		return Entry{}, fmt.Errorf("history: entry is not an object: %w", ErrDecode)
	}

	var d decodeEntry
	if err := json.Unmarshal(elem, &d); err != nil {
		return Entry{}, fmt.Errorf("history: %w", errors.Join(ErrDecode, err))
	}

	var e Entry
	if d.Seed != nil {
		e.Seed = *d.Seed
	}
	if d.MapSize != nil {
		v, err := core.ParseMapSize(*d.MapSize)
		if err != nil {
			return Entry{}, errors.Join(ErrDecode, err)
		}
		e.MapSize = v
	}
	if d.Density != nil {
		v, err := core.ParseDensity(*d.Density)
		if err != nil {
			return Entry{}, errors.Join(ErrDecode, err)
		}
		e.Density = v
	}
	if d.BotIntelligence != nil {
		v, err := core.ParseIntelligence(*d.BotIntelligence)
		if err != nil {
			return Entry{}, errors.Join(ErrDecode, err)
		}
		e.BotIntelligence = v
	}
	if d.StartingPosition != nil {
		if *d.StartingPosition < 0 {
			return Entry{}, fmt.Errorf("history: negative starting position %d: %w", *d.StartingPosition, ErrDecode)
		}
		e.StartingPosition = *d.StartingPosition
	}

	e.PlayedAt = time.UnixMilli(0)
	if d.PlayedAt != nil {
		e.PlayedAt = time.UnixMilli(*d.PlayedAt)
	}

	// won is only meaningful once the game completed.
	if d.Completed != nil && *d.Completed {
		if d.Won == nil {
			return Entry{}, fmt.Errorf("history: completed entry without result: %w", ErrDecode)
		}
		if *d.Won {
			e.Outcome = OutcomeWon
		} else {
			e.Outcome = OutcomeLost
		}
	}

	return e, nil
}
