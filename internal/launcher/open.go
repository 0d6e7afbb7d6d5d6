package launcher

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/feudal-seeds/internal/config"
	"github.com/vovakirdan/feudal-seeds/internal/events"
	"github.com/vovakirdan/feudal-seeds/internal/history"
	"github.com/vovakirdan/feudal-seeds/internal/newgame"
	"github.com/vovakirdan/feudal-seeds/internal/storage"
)

// App owns the database and everything built on top of it.
type App struct {
	*Launcher
	Bus *events.Bus
	db  *storage.DB
}

// Open opens the preference database named by cfg and builds a Launcher
// over it. Close the App when done.
func Open(cfg config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("launcher: %w", err)
	}

	bus := events.NewBus(logger.WithPrefix("events"))
	l := New(Deps{
		Preferences: newgame.NewStore(db.Preferences(newgame.PreferencesName), logger.WithPrefix("newgame")),
		History:     history.NewStore(db.Preferences(history.PreferencesName), logger.WithPrefix("history")),
		Bus:         bus,
		Config:      cfg,
		Logger:      logger,
	})

	return &App{Launcher: l, Bus: bus, db: db}, nil
}

// Close shuts the bus down and closes the database.
func (a *App) Close() error {
	a.Bus.Close()
	return a.db.Close()
}
