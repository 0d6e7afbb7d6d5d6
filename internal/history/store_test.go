package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/feudal-seeds/internal/core"
	"github.com/vovakirdan/feudal-seeds/internal/storage"
)

func entryWithSeed(seed int64, at int64) Entry {
	return NewEntry(seed, core.MapSizeMedium, core.DensityMedium, core.IntelligenceLevel2, 0, time.UnixMilli(at))
}

func seeds(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Seed
	}
	return out
}

func TestStoreCapsAndOrders(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	for seed := int64(1); seed <= 51; seed++ {
		if status := store.Add(entryWithSeed(seed, seed*1000)); status != StatusOK {
			t.Fatalf("Add(%d) returned %s", seed, status)
		}
	}

	list := store.List()
	if len(list) != MaxEntries {
		t.Fatalf("Expected %d entries, got %d", MaxEntries, len(list))
	}
	if list[0].Seed != 51 {
		t.Errorf("Expected newest seed 51 first, got %d", list[0].Seed)
	}
	if list[49].Seed != 2 {
		t.Errorf("Expected seed 2 last, got %d", list[49].Seed)
	}
	for _, e := range list {
		if e.Seed == 1 {
			t.Error("Expected seed 1 to be evicted")
		}
	}
}

func TestStoreDedupMovesToHead(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.Add(entryWithSeed(10, 1))
	store.Add(entryWithSeed(20, 2))
	store.Add(entryWithSeed(30, 3))
	replay := entryWithSeed(20, 4)
	store.Add(replay)

	list := store.List()
	if got := fmt.Sprint(seeds(list)); got != "[20 30 10]" {
		t.Fatalf("Expected [20 30 10], got %s", got)
	}
	if !list[0].Equal(replay) {
		t.Errorf("Expected the new seed-20 entry at the head, got %v (playedAt %v)", list[0], list[0].PlayedAt)
	}
}

func TestStoreDedupReplacesCompletedRow(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.Add(entryWithSeed(5, 1))
	store.UpdateOnCompletion(5, true)
	store.Add(entryWithSeed(5, 2))

	list := store.List()
	if len(list) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(list))
	}
	if list[0].Completed() {
		t.Error("Expected the replayed entry to be incomplete")
	}
}

func TestStoreDistinctConfigurationsCoexist(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	a := entryWithSeed(5, 1)
	b := a
	b.MapSize = core.MapSizeLarge
	store.Add(a)
	store.Add(b)

	if n := len(store.List()); n != 2 {
		t.Errorf("Expected same seed with a different map size to be kept, got %d entries", n)
	}
}

func TestStoreCompletionTransition(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	store.Add(entryWithSeed(42, 1))

	if status := store.UpdateOnCompletion(42, true); status != StatusOK {
		t.Fatalf("UpdateOnCompletion returned %s", status)
	}

	list := store.List()
	if len(list) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(list))
	}
	if won, ok := list[0].Won(); !ok || !won {
		t.Errorf("Expected seed 42 to be won, got %s", list[0].Outcome)
	}

	// No incomplete entry left for this seed
	store.UpdateOnCompletion(42, false)
	if list := store.List(); list[0].Outcome != OutcomeWon {
		t.Errorf("Expected outcome to stay Won, got %s", list[0].Outcome)
	}
}

func TestStoreCompletionTouchesMostRecentIncompleteOnly(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	older := entryWithSeed(7, 1)
	newer := older
	newer.PlayedAt = time.UnixMilli(2)
	newer.Density = core.DensityDense
	other := entryWithSeed(8, 3)

	store.Add(older)
	store.Add(newer)
	store.Add(other)

	store.UpdateOnCompletion(7, false)

	list := store.List()
	if list[0].Seed != 8 || list[0].Completed() {
		t.Errorf("Expected seed 8 untouched, got %v", list[0])
	}
	if list[1].Density != core.DensityDense || list[1].Outcome != OutcomeLost {
		t.Errorf("Expected the newer seed-7 entry to be lost, got %v", list[1])
	}
	if list[2].Completed() {
		t.Errorf("Expected the older seed-7 entry untouched, got %v", list[2])
	}
}

func TestStoreCompletionUnknownSeedIsNoop(t *testing.T) {
	backend := storage.NewMemory()
	store := NewStore(backend, nil)
	store.Add(entryWithSeed(1, 1))
	before, _ := backend.Committed(jsonKey)

	if status := store.UpdateOnCompletion(999, true); status != StatusOK {
		t.Errorf("Expected StatusOK, got %s", status)
	}
	after, _ := backend.Committed(jsonKey)
	if before != after {
		t.Error("Expected history to be unchanged")
	}
}

func TestStoreFilterViews(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.Add(entryWithSeed(1, 1)) // A: incomplete
	store.Add(entryWithSeed(2, 2)) // B: won
	store.UpdateOnCompletion(2, true)
	store.Add(entryWithSeed(3, 3)) // C: lost
	store.UpdateOnCompletion(3, false)

	tests := []struct {
		name string
		got  []Entry
		want string
	}{
		{"list", store.List(), "[3 2 1]"},
		{"completed", store.ListCompleted(), "[3 2]"},
		{"won", store.ListWon(), "[2]"},
		{"filter all", store.Filter(FilterAll), "[3 2 1]"},
	}

	for _, tt := range tests {
		if got := fmt.Sprint(seeds(tt.got)); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestStoreRemoveIsExactAndIdempotent(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	a := entryWithSeed(1, 1)
	b := entryWithSeed(2, 2)
	store.Add(a)
	store.Add(b)

	// Same configuration, different timestamp: not removed
	stale := a
	stale.PlayedAt = time.UnixMilli(999)
	store.Remove(stale)
	if n := len(store.List()); n != 2 {
		t.Fatalf("Expected 2 entries after removing a non-matching row, got %d", n)
	}

	store.Remove(a)
	once := fmt.Sprint(seeds(store.List()))
	store.Remove(a)
	twice := fmt.Sprint(seeds(store.List()))

	if once != "[2]" || twice != once {
		t.Errorf("Expected [2] after one and two removals, got %s and %s", once, twice)
	}
}

func TestStoreRemoveNeedsMatchingOutcome(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	e := entryWithSeed(4, 1)
	store.Add(e)
	store.UpdateOnCompletion(4, true)

	store.Remove(e) // still incomplete in the caller's copy
	if n := len(store.List()); n != 1 {
		t.Fatalf("Expected stale incomplete copy not to match, got %d entries", n)
	}

	store.Remove(store.List()[0])
	if n := len(store.List()); n != 0 {
		t.Errorf("Expected entry to be removed, got %d entries", n)
	}
}

func TestStoreClear(t *testing.T) {
	backend := storage.NewMemory()
	store := NewStore(backend, nil)
	store.Add(entryWithSeed(1, 1))
	store.Add(entryWithSeed(2, 2))

	if status := store.Clear(); status != StatusOK {
		t.Fatalf("Clear returned %s", status)
	}
	if n := len(store.List()); n != 0 {
		t.Errorf("Expected empty history after Clear, got %d", n)
	}
	if _, ok := backend.Committed(jsonKey); ok {
		t.Error("Expected history key to be removed from the backend")
	}
}

func TestStoreCorruptHistory(t *testing.T) {
	backend := storage.NewMemory()
	backend.PutString(jsonKey, "{not json")
	backend.Flush()
	store := NewStore(backend, nil)

	if list := store.List(); len(list) != 0 {
		t.Fatalf("Expected empty list for corrupt history, got %v", list)
	}
	if status := store.UpdateOnCompletion(1, true); status != StatusDecode {
		t.Errorf("Expected StatusDecode, got %s", status)
	}

	x := entryWithSeed(77, 1)
	if status := store.Add(x); status != StatusOK {
		t.Fatalf("Add returned %s", status)
	}
	list := store.List()
	if len(list) != 1 || !list[0].Equal(x) {
		t.Errorf("Expected [x], got %v", list)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	backend := storage.NewMemory()
	NewStore(backend, nil).Add(entryWithSeed(11, 1))

	list := NewStore(backend, nil).List()
	if len(list) != 1 || list[0].Seed != 11 {
		t.Errorf("Expected seed 11 to be persisted, got %v", list)
	}
}

func TestStoreWithSQLiteBackend(t *testing.T) {
	db, err := storage.Open(t.TempDir() + "/prefs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	store := NewStore(db.Preferences(PreferencesName), nil)
	store.Add(entryWithSeed(1, 1))
	store.Add(entryWithSeed(2, 2))
	store.UpdateOnCompletion(1, true)

	fresh := NewStore(db.Preferences(PreferencesName), nil)
	if got := fmt.Sprint(seeds(fresh.ListWon())); got != "[1]" {
		t.Errorf("Expected won seeds [1], got %s", got)
	}
}

// failingBackend wraps Memory and fails selected operations.
type failingBackend struct {
	*storage.Memory
	failRead  bool
	failFlush bool
}

func (f *failingBackend) GetString(key, def string) (string, error) {
	if f.failRead {
		return def, fmt.Errorf("disk gone: %w", storage.ErrBackendIO)
	}
	return f.Memory.GetString(key, def)
}

func (f *failingBackend) Flush() error {
	if f.failFlush {
		return fmt.Errorf("disk full: %w", storage.ErrBackendIO)
	}
	return f.Memory.Flush()
}

func TestStoreSwallowsBackendFailures(t *testing.T) {
	backend := &failingBackend{Memory: storage.NewMemory()}
	store := NewStore(backend, nil)
	store.Add(entryWithSeed(1, 1))

	backend.failFlush = true
	if status := store.Add(entryWithSeed(2, 2)); status != StatusBackendIO {
		t.Errorf("Expected StatusBackendIO from Add, got %s", status)
	}
	if status := store.Clear(); status != StatusBackendIO {
		t.Errorf("Expected StatusBackendIO from Clear, got %s", status)
	}

	backend.failFlush = false
	backend.failRead = true
	if list := store.List(); len(list) != 0 {
		t.Errorf("Expected empty list on read failure, got %v", list)
	}
	if status := store.Add(entryWithSeed(3, 3)); status != StatusBackendIO {
		t.Errorf("Expected StatusBackendIO on read failure, got %s", status)
	}
	if status := store.Remove(entryWithSeed(1, 1)); status != StatusBackendIO {
		t.Errorf("Expected StatusBackendIO from Remove, got %s", status)
	}

	// A read failure must not wipe the stored history
	backend.failRead = false
	if _, ok := backend.Committed(jsonKey); !ok {
		t.Fatal("Expected history to survive backend failures")
	}
}

func TestStatusErrorsClassification(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	if got := store.guard("op", func() error { return nil }); got != StatusOK {
		t.Errorf("Expected StatusOK, got %s", got)
	}
	if got := store.guard("op", func() error { return fmt.Errorf("x: %w", ErrDecode) }); got != StatusDecode {
		t.Errorf("Expected StatusDecode, got %s", got)
	}
	if got := store.guard("op", func() error { return errors.New("boom") }); got != StatusBackendIO {
		t.Errorf("Expected StatusBackendIO, got %s", got)
	}
}

func TestFilterCycle(t *testing.T) {
	f := FilterAll
	names := []string{}
	for range Filters() {
		names = append(names, f.String())
		f = f.Next()
	}
	if f != FilterAll {
		t.Errorf("Expected cycle to return to FilterAll, got %s", f)
	}
	if got := fmt.Sprint(names); got != "[All Games Completed Won Games]" {
		t.Errorf("Unexpected filter names: %s", got)
	}
}

func TestStoreRemoveSubMillisecondEntry(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	e := Entry{Seed: 9, PlayedAt: time.Unix(1700000000, 123456789)}

	if status := store.Add(e); status != StatusOK {
		t.Fatalf("Add() returned %s", status)
	}
	if list := store.List(); len(list) != 1 || !list[0].Equal(e) {
		t.Fatalf("Expected stored entry to equal the added one, got %v", list)
	}
	if status := store.Remove(e); status != StatusOK {
		t.Fatalf("Remove() returned %s", status)
	}
	if n := len(store.List()); n != 0 {
		t.Errorf("Expected empty history after remove, got %d entries", n)
	}
}

func TestStoreRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"unknown outcome", Entry{Seed: 1, Outcome: Outcome(7)}},
		{"unknown map size", Entry{Seed: 1, MapSize: core.MapSize(9)}},
		{"unknown density", Entry{Seed: 1, Density: core.Density(9)}},
		{"unknown intelligence", Entry{Seed: 1, BotIntelligence: core.Intelligence(9)}},
		{"negative position", Entry{Seed: 1, StartingPosition: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := storage.NewMemory()
			store := NewStore(backend, nil)
			store.Add(entryWithSeed(5, 1))

			if status := store.Add(tt.entry); status != StatusDecode {
				t.Errorf("Expected StatusDecode, got %s", status)
			}
			if got := seeds(store.List()); len(got) != 1 || got[0] != 5 {
				t.Errorf("Expected history [5] unchanged, got %v", got)
			}
		})
	}
}
