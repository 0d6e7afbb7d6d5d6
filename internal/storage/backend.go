package storage

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrBackendIO is wrapped by every read, write or flush failure of a backend.
var ErrBackendIO = errors.New("preference backend I/O")

// Backend is a flat key/value preference store for one namespace.
// Puts and removes become durable only after Flush returns nil.
type Backend interface {
	GetLong(key string, def int64) (int64, error)
	PutLong(key string, v int64) error
	GetInteger(key string, def int32) (int32, error)
	PutInteger(key string, v int32) error
	GetString(key string, def string) (string, error)
	PutString(key string, v string) error
	Remove(key string) error
	Flush() error
}

// pending is one buffered write. A nil value marks a removal.
type pending struct {
	value *string
}

func parseLong(key, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: key %q is not a long: %w", key, errors.Join(ErrBackendIO, err))
	}
	return v, nil
}

func parseInteger(key, raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("storage: key %q is not an integer: %w", key, errors.Join(ErrBackendIO, err))
	}
	return int32(v), nil
}
