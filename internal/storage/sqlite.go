// Package storage provides preference backends: flat key/value stores
// split into namespaces, with buffered writes made durable by Flush.
// The durable backend uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// DB manages the SQLite connection holding every preference namespace.
type DB struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*DB, error) {
	if dbPath != MemoryPath {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if dbPath != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: enable WAL: %w", err)
		}
	}

	store := &DB{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *DB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS preferences (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *DB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Preferences returns the backend for one namespace.
// Each call returns an independent write buffer.
func (s *DB) Preferences(namespace string) *Preferences {
	return &Preferences{
		db:        s.db,
		namespace: namespace,
		pending:   make(map[string]pending),
	}
}

// Preferences is a Backend over one namespace of the SQLite database.
type Preferences struct {
	db        *sql.DB
	namespace string
	pending   map[string]pending
}

var _ Backend = (*Preferences)(nil)

func (p *Preferences) lookup(key string) (string, bool, error) {
	if pv, ok := p.pending[key]; ok {
		if pv.value == nil {
			return "", false, nil
		}
		return *pv.value, true, nil
	}

	var raw string
	err := p.db.QueryRow(
		"SELECT value FROM preferences WHERE namespace = ? AND key = ?",
		p.namespace, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s/%s: %w", p.namespace, key, errors.Join(ErrBackendIO, err))
	}
	return raw, true, nil
}

func (p *Preferences) put(key, raw string) {
	p.pending[key] = pending{value: &raw}
}

func (p *Preferences) GetLong(key string, def int64) (int64, error) {
	raw, ok, err := p.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return parseLong(key, raw)
}

func (p *Preferences) PutLong(key string, v int64) error {
	p.put(key, strconv.FormatInt(v, 10))
	return nil
}

func (p *Preferences) GetInteger(key string, def int32) (int32, error) {
	raw, ok, err := p.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return parseInteger(key, raw)
}

func (p *Preferences) PutInteger(key string, v int32) error {
	p.put(key, strconv.FormatInt(int64(v), 10))
	return nil
}

func (p *Preferences) GetString(key string, def string) (string, error) {
	raw, ok, err := p.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return raw, nil
}

func (p *Preferences) PutString(key string, v string) error {
	p.put(key, v)
	return nil
}

func (p *Preferences) Remove(key string) error {
	p.pending[key] = pending{}
	return nil
}

// Flush writes every buffered change in a single transaction.
// On failure nothing is applied and the buffered changes are dropped, so
// reads fall back to the last durable state.
func (p *Preferences) Flush() error {
	if len(p.pending) == 0 {
		return nil
	}
	defer clear(p.pending)

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin flush: %w", errors.Join(ErrBackendIO, err))
	}

	for key, pv := range p.pending {
		if pv.value == nil {
			_, err = tx.Exec(
				"DELETE FROM preferences WHERE namespace = ? AND key = ?",
				p.namespace, key,
			)
		} else {
			_, err = tx.Exec(
				`INSERT INTO preferences (namespace, key, value) VALUES (?, ?, ?)
				 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
				p.namespace, key, *pv.value,
			)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot write %s/%s: %w", p.namespace, key, errors.Join(ErrBackendIO, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit flush: %w", errors.Join(ErrBackendIO, err))
	}
	return nil
}
