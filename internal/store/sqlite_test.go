package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"), Limits{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	if _, err := s.Get(ctx, "users", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: got %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "users", "u1", []byte("one")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "users", "u1", []byte("two")); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	got, err := s.Get(ctx, "users", "u1")
	if err != nil || string(got) != "two" {
		t.Errorf("get = %s, %v", got, err)
	}

	ok, err := s.Contains(ctx, "users", "u1")
	if err != nil || !ok {
		t.Errorf("Contains = %v, %v", ok, err)
	}
}

func TestSQLiteDumpRestore(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	s.Put(ctx, "things", "b", []byte("2"))
	s.Put(ctx, "things", "a", []byte("1"))

	records, err := s.Dump(ctx, "things")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(records) != 2 || records[0].Key != "a" || records[1].Key != "b" {
		t.Fatalf("dump order = %v", records)
	}

	// Restore replaces the collection wholesale.
	if err := s.Restore(ctx, "things", records[:1]); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if ok, _ := s.Contains(ctx, "things", "b"); ok {
		t.Error("restore kept a record outside the snapshot")
	}
	if ok, _ := s.Contains(ctx, "things", "a"); !ok {
		t.Error("restore dropped a snapshot record")
	}
}
