// Package store provides the keyed record store backing every collection:
// an ordered key/value interface with pluggable backends, a typed table
// wrapper, and drain/replay snapshots for upgrades.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key has no record in a collection.
	ErrNotFound = errors.New("record not found")
	// ErrRecordTooLarge is returned when a key or value exceeds the
	// configured limits. Oversized records are rejected, never truncated.
	ErrRecordTooLarge = errors.New("record exceeds size limit")
)

// Limits bounds key and value sizes per store. A zero field means
// unbounded.
type Limits struct {
	MaxKeySize   int
	MaxValueSize int
}

// Check validates a record against the limits.
func (l Limits) Check(key string, value []byte) error {
	if l.MaxKeySize > 0 && len(key) > l.MaxKeySize {
		return ErrRecordTooLarge
	}
	if l.MaxValueSize > 0 && len(value) > l.MaxValueSize {
		return ErrRecordTooLarge
	}
	return nil
}

// Record is one stored key/value pair, as drained by Dump and replayed by
// Restore.
type Record struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// KV is the backend contract. Put overwrites unconditionally (last write
// wins); Ascend visits keys in ascending order over a snapshot taken at
// call time, so callbacks may mutate the store without corrupting the
// iteration.
type KV interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Put(ctx context.Context, collection, key string, value []byte) error
	Contains(ctx context.Context, collection, key string) (bool, error)
	Ascend(ctx context.Context, collection string, fn func(key string, value []byte) error) error
	Dump(ctx context.Context, collection string) ([]Record, error)
	Restore(ctx context.Context, collection string, records []Record) error
	Close() error
}
