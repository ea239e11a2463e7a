package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	err := NotFoundf("course %s not found", "course_1")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundf result does not match ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("NotFoundf result matches ErrForbidden")
	}
	if got := err.Error(); got != "course course_1 not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(Forbiddenf("nope")); k != KindForbidden {
		t.Errorf("KindOf = %s, want Forbidden", k)
	}
	if k := KindOf(fmt.Errorf("wrap: %w", InvalidInputf("bad"))); k != KindInvalidInput {
		t.Errorf("KindOf wrapped = %s, want InvalidInput", k)
	}
	if k := KindOf(errors.New("plain")); k != "" {
		t.Errorf("KindOf plain error = %q, want empty", k)
	}
}

func TestRequireOwner(t *testing.T) {
	if err := RequireOwner("alice", "alice"); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
	if err := RequireOwner("bob", "alice"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-owner: got %v, want Unauthorized", err)
	}
}
