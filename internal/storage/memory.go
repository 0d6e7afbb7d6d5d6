package storage

import "strconv"

// Memory is an in-process Backend. It buffers writes until Flush like the
// SQLite backend does, so callers behave the same against either.
type Memory struct {
	committed map[string]string
	pending   map[string]pending
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		committed: make(map[string]string),
		pending:   make(map[string]pending),
	}
}

func (m *Memory) lookup(key string) (string, bool) {
	if p, ok := m.pending[key]; ok {
		if p.value == nil {
			return "", false
		}
		return *p.value, true
	}
	v, ok := m.committed[key]
	return v, ok
}

func (m *Memory) put(key, raw string) {
	m.pending[key] = pending{value: &raw}
}

func (m *Memory) GetLong(key string, def int64) (int64, error) {
	raw, ok := m.lookup(key)
	if !ok {
		return def, nil
	}
	return parseLong(key, raw)
}

func (m *Memory) PutLong(key string, v int64) error {
	m.put(key, strconv.FormatInt(v, 10))
	return nil
}

func (m *Memory) GetInteger(key string, def int32) (int32, error) {
	raw, ok := m.lookup(key)
	if !ok {
		return def, nil
	}
	return parseInteger(key, raw)
}

func (m *Memory) PutInteger(key string, v int32) error {
	m.put(key, strconv.FormatInt(int64(v), 10))
	return nil
}

func (m *Memory) GetString(key string, def string) (string, error) {
	raw, ok := m.lookup(key)
	if !ok {
		return def, nil
	}
	return raw, nil
}

func (m *Memory) PutString(key string, v string) error {
	m.put(key, v)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.pending[key] = pending{}
	return nil
}

// Flush applies every buffered write.
func (m *Memory) Flush() error {
	for key, p := range m.pending {
		if p.value == nil {
			delete(m.committed, key)
		} else {
			m.committed[key] = *p.value
		}
	}
	clear(m.pending)
	return nil
}

// Committed returns the flushed value of key, ignoring buffered writes.
func (m *Memory) Committed(key string) (string, bool) {
	v, ok := m.committed[key]
	return v, ok
}
