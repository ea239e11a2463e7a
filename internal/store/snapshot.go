package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is a full drain of named collections, taken before an upgrade
// and replayed after. Collections map to their records in key order.
type Snapshot map[string][]Record

// Backup drains every named collection from the store.
func Backup(ctx context.Context, kv KV, collections ...string) (Snapshot, error) {
	snap := make(Snapshot, len(collections))
	for _, c := range collections {
		records, err := kv.Dump(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", c, err)
		}
		snap[c] = records
	}
	return snap, nil
}

// Replay restores every collection in the snapshot, replacing current
// contents.
func Replay(ctx context.Context, kv KV, snap Snapshot) error {
	for c, records := range snap {
		if err := kv.Restore(ctx, c, records); err != nil {
			return fmt.Errorf("restore %s: %w", c, err)
		}
	}
	return nil
}

// WriteFile persists a snapshot as JSON, used by the daemon to carry the
// memory backend's state across restarts.
func (s Snapshot) WriteFile(path string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadSnapshotFile loads a snapshot written by WriteFile. A missing file
// returns an empty snapshot.
func ReadSnapshotFile(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
