package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is the default backend: an in-process ordered map per collection.
// It is safe for concurrent use.
type Memory struct {
	limits Limits
	mu     sync.RWMutex
	data   map[string]map[string][]byte
}

// NewMemory creates an empty in-memory store with the given limits.
func NewMemory(limits Limits) *Memory {
	return &Memory{limits: limits, data: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, collection, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Put(_ context.Context, collection, key string, value []byte) error {
	if err := m.limits.Check(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.data[collection]
	if !ok {
		c = make(map[string][]byte)
		m.data[collection] = c
	}
	v := make([]byte, len(value))
	copy(v, value)
	c[key] = v
	return nil
}

func (m *Memory) Contains(_ context.Context, collection, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[collection][key]
	return ok, nil
}

// Ascend visits records in key order. The snapshot is taken under the read
// lock, so fn may call back into the store.
func (m *Memory) Ascend(_ context.Context, collection string, fn func(key string, value []byte) error) error {
	snap := m.snapshot(collection)
	for _, r := range snap {
		if err := fn(r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Dump(_ context.Context, collection string) ([]Record, error) {
	return m.snapshot(collection), nil
}

func (m *Memory) Restore(_ context.Context, collection string, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := make(map[string][]byte, len(records))
	for _, r := range records {
		v := make([]byte, len(r.Value))
		copy(v, r.Value)
		c[r.Key] = v
	}
	m.data[collection] = c
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) snapshot(collection string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.data[collection]
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		v := make([]byte, len(c[k]))
		copy(v, c[k])
		out = append(out, Record{Key: k, Value: v})
	}
	return out
}
