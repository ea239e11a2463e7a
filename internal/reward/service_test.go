package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

type fakeDirectory map[domain.Principal]bool

func (d fakeDirectory) Exists(_ context.Context, id domain.Principal) (bool, error) {
	return d[id], nil
}

func newTestService() *Service {
	clock := &domain.FixedClock{
		T:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Step: time.Second,
	}
	dir := fakeDirectory{"alice": true, "bob": true}
	return NewService(store.NewMemory(store.Limits{}), dir, clock, nil)
}

func asCaller(p domain.Principal) context.Context {
	return domain.WithPrincipal(context.Background(), p)
}

func TestCreate(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	r, err := s.Create(ctx, CreateParams{UserID: "bob", Amount: 5000, RewardType: "course_completion", SourceID: "course_1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != domain.RewardPending {
		t.Errorf("Status = %s, want pending", r.Status)
	}

	if _, err := s.Create(ctx, CreateParams{UserID: "ghost", Amount: 100}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unregistered target: got %v, want NotFound", err)
	}
	if _, err := s.Create(ctx, CreateParams{UserID: "bob", Amount: 0}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("zero amount: got %v, want InvalidPayload", err)
	}
}

func TestProcessThenClaimExcluded(t *testing.T) {
	s := newTestService()
	ctx := asCaller("bob")

	r, err := s.Create(ctx, CreateParams{UserID: "bob", Amount: 5000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Process(ctx, r.ID, "txhash1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if got.Status != domain.RewardCompleted || got.TransactionHash == nil || *got.TransactionHash != "txhash1" {
		t.Errorf("processed = %+v", got)
	}

	if _, err := s.Claim(ctx, r.ID, "bc1qaddr"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("claim after process: got %v, want InvalidInput", err)
	}
	if _, err := s.Process(ctx, r.ID, "txhash2"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("double process: got %v, want InvalidInput", err)
	}
}

func TestClaimOwnerOnly(t *testing.T) {
	s := newTestService()

	r, err := s.Create(asCaller("alice"), CreateParams{UserID: "bob", Amount: 5000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Claim(asCaller("alice"), r.ID, "bc1qaddr"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-owner claim: got %v, want Unauthorized", err)
	}

	got, err := s.Claim(asCaller("bob"), r.ID, "bc1qaddr")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got.Status != domain.RewardClaimed || got.WalletAddress == nil || *got.WalletAddress != "bc1qaddr" {
		t.Errorf("claimed = %+v", got)
	}

	if _, err := s.Process(asCaller("alice"), r.ID, "tx"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("process after claim: got %v, want InvalidInput", err)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	a, _ := s.Create(ctx, CreateParams{UserID: "alice", Amount: 100})
	s.Create(ctx, CreateParams{UserID: "alice", Amount: 200})
	s.Create(ctx, CreateParams{UserID: "bob", Amount: 300})
	s.Process(ctx, a.ID, "tx")

	page, err := s.List(ctx, ListFilter{UserID: "alice"}, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("user filter Total = %d, want 2", page.Total)
	}

	page, _ = s.List(ctx, ListFilter{UserID: "alice", Status: domain.RewardPending}, 0, 10)
	if page.Total != 1 {
		t.Errorf("status filter Total = %d, want 1", page.Total)
	}
}
