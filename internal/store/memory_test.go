package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryBasics(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Limits{})

	if _, err := m.Get(ctx, "users", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: got %v, want ErrNotFound", err)
	}

	if err := m.Put(ctx, "users", "u1", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := m.Get(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"n":1}` {
		t.Errorf("get = %s", got)
	}

	// Last write wins.
	if err := m.Put(ctx, "users", "u1", []byte(`{"n":2}`)); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	got, _ = m.Get(ctx, "users", "u1")
	if string(got) != `{"n":2}` {
		t.Errorf("after overwrite = %s", got)
	}

	ok, err := m.Contains(ctx, "users", "u1")
	if err != nil || !ok {
		t.Errorf("Contains = %v, %v", ok, err)
	}
	ok, _ = m.Contains(ctx, "users", "u2")
	if ok {
		t.Error("Contains reported missing key")
	}
}

func TestMemoryAscendOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Limits{})

	for _, k := range []string{"c", "a", "b"} {
		if err := m.Put(ctx, "things", k, []byte(k)); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}

	var seen []string
	err := m.Ascend(ctx, "things", func(key string, _ []byte) error {
		seen = append(seen, key)
		// Mutation during iteration must not disturb the snapshot.
		return m.Put(ctx, "things", "z"+key, []byte("x"))
	})
	if err != nil {
		t.Fatalf("ascend: %v", err)
	}
	if got := strings.Join(seen, ","); got != "a,b,c" {
		t.Errorf("ascend order = %s, want a,b,c", got)
	}
}

func TestMemoryLimits(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Limits{MaxKeySize: 4, MaxValueSize: 8})

	if err := m.Put(ctx, "c", "long-key", []byte("v")); !errors.Is(err, ErrRecordTooLarge) {
		t.Errorf("oversized key: got %v, want ErrRecordTooLarge", err)
	}
	if err := m.Put(ctx, "c", "k", []byte("0123456789")); !errors.Is(err, ErrRecordTooLarge) {
		t.Errorf("oversized value: got %v, want ErrRecordTooLarge", err)
	}
	if err := m.Put(ctx, "c", "k", []byte("small")); err != nil {
		t.Errorf("within limits: %v", err)
	}
	// The rejected write must not have landed.
	if ok, _ := m.Contains(ctx, "c", "long-key"); ok {
		t.Error("oversized record was stored")
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Limits{})

	m.Put(ctx, "users", "u1", []byte("a"))
	m.Put(ctx, "users", "u2", []byte("b"))
	m.Put(ctx, "courses", "c1", []byte("c"))

	snap, err := Backup(ctx, m, "users", "courses")
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	path := t.TempDir() + "/snapshot.json"
	if err := snap.WriteFile(path); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	loaded, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	fresh := NewMemory(Limits{})
	if err := Replay(ctx, fresh, loaded); err != nil {
		t.Fatalf("replay: %v", err)
	}
	got, err := fresh.Get(ctx, "users", "u2")
	if err != nil || string(got) != "b" {
		t.Errorf("after replay: %s, %v", got, err)
	}
	got, err = fresh.Get(ctx, "courses", "c1")
	if err != nil || string(got) != "c" {
		t.Errorf("after replay: %s, %v", got, err)
	}
}

func TestReadSnapshotFileMissing(t *testing.T) {
	snap, err := ReadSnapshotFile(t.TempDir() + "/absent.json")
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("missing file snapshot = %v", snap)
	}
}
