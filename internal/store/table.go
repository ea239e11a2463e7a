package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Table is a typed view over one collection of a KV backend, with a JSON
// codec. Services work exclusively through tables.
type Table[T any] struct {
	kv         KV
	collection string
}

// NewTable binds a typed table to a collection.
func NewTable[T any](kv KV, collection string) *Table[T] {
	return &Table[T]{kv: kv, collection: collection}
}

// Collection returns the backing collection name.
func (t *Table[T]) Collection() string { return t.collection }

// Get loads and decodes the record at key.
func (t *Table[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	raw, err := t.kv.Get(ctx, t.collection, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s record: %w", t.collection, err)
	}
	return v, nil
}

// Put encodes and stores v at key, overwriting any existing record.
func (t *Table[T]) Put(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", t.collection, err)
	}
	return t.kv.Put(ctx, t.collection, key, raw)
}

// Contains reports whether key has a record.
func (t *Table[T]) Contains(ctx context.Context, key string) (bool, error) {
	return t.kv.Contains(ctx, t.collection, key)
}

// All decodes every record in the collection, in key order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	err := t.kv.Ascend(ctx, t.collection, func(_ string, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %s record: %w", t.collection, err)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
