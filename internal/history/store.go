// Package history keeps a bounded, most-recent-first journal of played
// seeds in a preference backend. It is best-effort: storage failures are
// logged and reported as a Status, never as an error.
package history

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/storage"
)

const (
	// PreferencesName is the backend namespace holding the history.
	PreferencesName = "seedHistoryPreferences"

	// MaxEntries caps the journal; the oldest rows are evicted first.
	MaxEntries = 50

	jsonKey = "seedHistoryJson"
)

// Status tells the caller how a mutation went. Ignoring it is fine.
type Status int

const (
	StatusOK Status = iota
	StatusBackendIO
	StatusDecode
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBackendIO:
		return "backend I/O failure"
	case StatusDecode:
		return "decode failure"
	default:
		return "unknown"
	}
}

// Filter selects a view of the history.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterWon
)

// Filters lists the views in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterWon}
}

func (f Filter) String() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterWon:
		return "Won Games"
	default:
		return "All Games"
	}
}

// Next cycles to the following view.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(Filters()))
}

// Match reports whether e belongs to the view.
func (f Filter) Match(e Entry) bool {
	switch f {
	case FilterCompleted:
		return e.Completed()
	case FilterWon:
		won, ok := e.Won()
		return ok && won
	default:
		return true
	}
}

// Store is the seed history journal. It does no locking; use it from one
// goroutine at a time.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
}

// NewStore creates a store over the seedHistoryPreferences backend.
// A nil logger discards output.
func NewStore(backend storage.Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, logger: logger}
}

// Add puts entry at the head of the history, replacing any row for the
// same game configuration, and evicts rows beyond MaxEntries. An entry
// that fails Validate is rejected with StatusDecode and nothing is written.
func (s *Store) Add(entry Entry) Status {
	return s.guard("add seed entry", func() error {
		if err := entry.Validate(); err != nil {
			return err
		}
		entry.PlayedAt = time.UnixMilli(entry.PlayedAt.UnixMilli())

		history, err := s.load()
		if err != nil {
			if !errors.Is(err, ErrDecode) {
				return err
			}
			// A corrupt document cannot be repaired; start over.
			s.logger.Warn("discarding unreadable seed history", "error", err)
			history = []Entry{}
		}

		kept := make([]Entry, 0, len(history)+1)
		kept = append(kept, entry)
		for _, existing := range history {
			if !existing.SameGame(entry) {
				kept = append(kept, existing)
			}
		}
		if len(kept) > MaxEntries {
			kept = kept[:MaxEntries]
		}

		if err := s.save(kept); err != nil {
			return err
		}
		s.logger.Debug("added seed entry to history", "seed", entry.Seed)
		return nil
	})
}

// UpdateOnCompletion finishes the most recent INCOMPLETE entry for seed.
// Without such an entry it does nothing.
func (s *Store) UpdateOnCompletion(seed int64, won bool) Status {
	return s.guard("update seed entry", func() error {
		history, err := s.load()
		if err != nil {
			return err
		}

		for i := range history {
			if history[i].Seed == seed && !history[i].Completed() {
				history[i].Complete(won)
				if err := s.save(history); err != nil {
					return err
				}
				s.logger.Debug("updated seed entry", "seed", seed, "outcome", history[i].Outcome)
				return nil
			}
		}
		return nil
	})
}

// List returns the whole history, most recent first. An unreadable
// history is reported as empty.
func (s *Store) List() []Entry {
	history, err := s.load()
	if err != nil {
		s.logger.Warn("failed to load seed history, returning empty list", "error", err)
		return []Entry{}
	}
	return history
}

// ListCompleted returns the finished games.
func (s *Store) ListCompleted() []Entry {
	return s.Filter(FilterCompleted)
}

// ListWon returns the games the player won.
func (s *Store) ListWon() []Entry {
	return s.Filter(FilterWon)
}

// Filter returns the entries matching f, keeping history order.
func (s *Store) Filter(f Filter) []Entry {
	all := s.List()
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes every row equal to entry, timestamp and outcome included.
func (s *Store) Remove(entry Entry) Status {
	return s.guard("remove seed entry", func() error {
		history, err := s.load()
		if err != nil {
			return err
		}

		kept := history[:0]
		for _, e := range history {
			if !e.Equal(entry) {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(history) {
			return nil
		}

		if err := s.save(kept); err != nil {
			return err
		}
		s.logger.Debug("removed seed entry", "seed", entry.Seed)
		return nil
	})
}

// Clear drops the whole history.
func (s *Store) Clear() Status {
	return s.guard("clear seed history", func() error {
		if err := s.backend.Remove(jsonKey); err != nil {
			return err
		}
		if err := s.backend.Flush(); err != nil {
			return err
		}
		s.logger.Debug("cleared seed history")
		return nil
	})
}

// guard runs op and turns its error into a logged Status.
func (s *Store) guard(op string, fn func() error) Status {
	err := fn()
	if err == nil {
		return StatusOK
	}

	status := StatusBackendIO
	if errors.Is(err, ErrDecode) {
		status = StatusDecode
	}
	s.logger.Warn("failed to "+op, "status", status, "error", err)
	return status
}

func (s *Store) load() ([]Entry, error) {
	doc, err := s.backend.GetString(jsonKey, "[]")
	if err != nil {
		return []Entry{}, err
	}
	return Decode(doc, s.logger)
}

func (s *Store) save(history []Entry) error {
	doc, err := Encode(history)
	if err != nil {
		return err
	}
	if err := s.backend.PutString(jsonKey, doc); err != nil {
		return err
	}
	return s.backend.Flush()
}
