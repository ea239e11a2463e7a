package store

import (
	"context"
	"errors"
	"testing"
)

type widget struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestTable(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[widget](NewMemory(Limits{}), "widgets")

	if _, err := tbl.Get(ctx, "w1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: got %v, want ErrNotFound", err)
	}

	if err := tbl.Put(ctx, "w1", widget{ID: "w1", Count: 3}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := tbl.Get(ctx, "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}

	ok, err := tbl.Contains(ctx, "w1")
	if err != nil || !ok {
		t.Errorf("Contains = %v, %v", ok, err)
	}

	tbl.Put(ctx, "w2", widget{ID: "w2"})
	all, err := tbl.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 || all[0].ID != "w1" || all[1].ID != "w2" {
		t.Errorf("All = %v", all)
	}
}

func TestTableSizeLimit(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[widget](NewMemory(Limits{MaxValueSize: 10}), "widgets")

	err := tbl.Put(ctx, "w1", widget{ID: "a-rather-long-identifier"})
	if !errors.Is(err, ErrRecordTooLarge) {
		t.Errorf("oversized value: got %v, want ErrRecordTooLarge", err)
	}
}
