package arena

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

func newTestService() *Service {
	clock := &domain.FixedClock{
		T:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Step: time.Second,
	}
	return NewService(store.NewMemory(store.Limits{}), clock, nil)
}

func asCaller(p domain.Principal) context.Context {
	return domain.WithPrincipal(context.Background(), p)
}

func testArena(t *testing.T, s *Service) *domain.CombatArena {
	t.Helper()
	a, err := s.CreateArena(asCaller("admin"), CreateArenaParams{
		Name:          "Go Gauntlet",
		SkillCategory: "programming",
		MinStake:      10,
		MaxStake:      100,
	})
	if err != nil {
		t.Fatalf("create arena: %v", err)
	}
	return a
}

func TestCreateArenaValidation(t *testing.T) {
	s := newTestService()
	ctx := asCaller("admin")

	if _, err := s.CreateArena(ctx, CreateArenaParams{}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("missing name: got %v, want InvalidPayload", err)
	}
	if _, err := s.CreateArena(ctx, CreateArenaParams{Name: "x", MinStake: 50, MaxStake: 10}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("min > max: got %v, want InvalidPayload", err)
	}
}

func TestChallengeStakeBounds(t *testing.T) {
	s := newTestService()
	a := testArena(t, s)
	ctx := asCaller("alice")

	if _, err := s.Challenge(ctx, ChallengeParams{ArenaID: a.ID, OpponentID: "bob", StakeAmount: 5}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("stake below minimum: got %v, want InvalidPayload", err)
	}
	if _, err := s.Challenge(ctx, ChallengeParams{ArenaID: a.ID, OpponentID: "bob", StakeAmount: 500}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("stake above maximum: got %v, want InvalidPayload", err)
	}
	if _, err := s.Challenge(ctx, ChallengeParams{ArenaID: a.ID, OpponentID: "alice", StakeAmount: 50}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("self-challenge: got %v, want InvalidInput", err)
	}

	b, err := s.Challenge(ctx, ChallengeParams{ArenaID: a.ID, OpponentID: "bob", SkillID: "skill_go", StakeAmount: 50})
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if b.Status != domain.BattlePending {
		t.Errorf("Status = %s, want pending", b.Status)
	}
}

func TestBattleLifecycle(t *testing.T) {
	s := newTestService()
	a := testArena(t, s)

	b, err := s.Challenge(asCaller("alice"), ChallengeParams{ArenaID: a.ID, OpponentID: "bob", StakeAmount: 50})
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}

	if _, err := s.Join(asCaller("carol"), b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("third party joining: got %v, want Forbidden", err)
	}

	got, err := s.Join(asCaller("bob"), b.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if got.Status != domain.BattleInProgress {
		t.Fatalf("Status = %s, want in_progress", got.Status)
	}

	got, err = s.Complete(asCaller("admin"), b.ID, "bob")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != domain.BattleCompleted || got.WinnerID == nil || *got.WinnerID != "bob" {
		t.Errorf("completed = %+v", got)
	}

	// The winner gets a claimable reward worth the pot.
	page, err := s.ListBattles(asCaller("admin"), ListFilter{ArenaID: a.ID, Status: domain.BattleCompleted}, 0, 10)
	if err != nil || page.Total != 1 {
		t.Fatalf("list completed = %+v, %v", page, err)
	}

	rewards, err := s.rewards.All(context.Background())
	if err != nil || len(rewards) != 1 {
		t.Fatalf("rewards = %v, %v", rewards, err)
	}
	r := rewards[0]
	if r.UserID != "bob" || r.Amount != 100 {
		t.Errorf("reward = %+v", r)
	}

	if _, err := s.ClaimBattleReward(asCaller("alice"), r.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("loser claiming: got %v, want Unauthorized", err)
	}
	claimed, err := s.ClaimBattleReward(asCaller("bob"), r.ID)
	if err != nil || !claimed.Claimed {
		t.Fatalf("claim = %+v, %v", claimed, err)
	}
	if _, err := s.ClaimBattleReward(asCaller("bob"), r.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("double claim: got %v, want InvalidInput", err)
	}
}

func TestCancel(t *testing.T) {
	s := newTestService()
	a := testArena(t, s)

	b, err := s.Challenge(asCaller("alice"), ChallengeParams{ArenaID: a.ID, OpponentID: "bob", StakeAmount: 50})
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}

	if _, err := s.Cancel(asCaller("bob"), b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("opponent cancelling: got %v, want Forbidden", err)
	}
	got, err := s.Cancel(asCaller("alice"), b.ID)
	if err != nil || got.Status != domain.BattleCancelled {
		t.Fatalf("cancel = %+v, %v", got, err)
	}
	if _, err := s.Join(asCaller("bob"), b.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("join cancelled: got %v, want InvalidInput", err)
	}
}

func TestListBattlesBadStatus(t *testing.T) {
	s := newTestService()
	if _, err := s.ListBattles(asCaller("admin"), ListFilter{Status: "bogus"}, 0, 10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad status filter: got %v, want InvalidInput", err)
	}
}
