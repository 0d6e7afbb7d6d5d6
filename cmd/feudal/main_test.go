package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/feudal-seeds/internal/config"
	"github.com/vovakirdan/feudal-seeds/internal/launcher"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFailingCommandClosesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	err := execute(t, "--db", dbPath, "--log-level", "error", "history", "remove", "5")
	if err == nil {
		t.Fatal("Expected an error for a missing history row")
	}

	if _, err := os.Stat(dbPath + "-wal"); !os.IsNotExist(err) {
		t.Errorf("Expected the WAL file to be removed on close, got %v", err)
	}
}

func TestStartThenFinish(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	if err := execute(t, "--db", dbPath, "--log-level", "error", "newgame", "start", "--seed", "42", "--size", "large"); err != nil {
		t.Fatalf("newgame start failed: %v", err)
	}
	if err := execute(t, "--db", dbPath, "--log-level", "error", "newgame", "finish", "42", "--won"); err != nil {
		t.Fatalf("newgame finish failed: %v", err)
	}

	cfg := config.Default()
	cfg.Storage.Path = dbPath
	app, err := launcher.Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer app.Close()

	won := app.History().ListWon()
	if len(won) != 1 || won[0].Seed != 42 {
		t.Errorf("Expected seed 42 to be won, got %v", won)
	}
}
