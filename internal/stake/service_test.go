package stake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

func newTestService(clock domain.Clock) *Service {
	return NewService(store.NewMemory(store.Limits{}), clock, nil)
}

func testClock() *domain.FixedClock {
	return &domain.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func asCaller(p domain.Principal) context.Context {
	return domain.WithPrincipal(context.Background(), p)
}

func TestCreate(t *testing.T) {
	s := newTestService(testClock())
	ctx := asCaller("alice")

	st, err := s.Create(ctx, CreateParams{Amount: 100, SkillID: "skill_go", DurationDays: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.Status != domain.StakeActive {
		t.Errorf("Status = %s, want active", st.Status)
	}
	if want := st.StartDate.AddDate(0, 0, 14); !st.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", st.EndDate, want)
	}

	if _, err := s.Create(ctx, CreateParams{Amount: 100, DurationDays: 6}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("6-day stake: got %v, want InvalidPayload", err)
	}
	if _, err := s.Create(ctx, CreateParams{Amount: 0, DurationDays: 14}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("zero amount: got %v, want InvalidPayload", err)
	}
}

func TestUpdateLeavesRecordOnFailure(t *testing.T) {
	s := newTestService(testClock())
	ctx := asCaller("alice")

	st, err := s.Create(ctx, CreateParams{Amount: 100, DurationDays: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Update(ctx, st.ID, UpdateParams{Amount: 200, DurationDays: 3}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("short duration: got %v, want InvalidPayload", err)
	}
	got, err := s.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 100 || got.DurationDays != 14 {
		t.Errorf("record changed by rejected update: %+v", got)
	}

	got, err = s.Update(ctx, st.ID, UpdateParams{Amount: 200, DurationDays: 30})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if got.Amount != 200 || got.DurationDays != 30 {
		t.Errorf("updated = %+v", got)
	}
	if want := got.StartDate.AddDate(0, 0, 30); !got.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want recomputed %v", got.EndDate, want)
	}
}

func TestOwnership(t *testing.T) {
	s := newTestService(testClock())

	st, err := s.Create(asCaller("alice"), CreateParams{Amount: 100, DurationDays: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bob := asCaller("bob")
	if _, err := s.Get(bob, st.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("get foreign stake: got %v, want Unauthorized", err)
	}
	if _, err := s.Update(bob, st.ID, UpdateParams{Amount: 1, DurationDays: 14}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("update foreign stake: got %v, want Unauthorized", err)
	}
	if _, err := s.Withdraw(bob, st.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("withdraw foreign stake: got %v, want Unauthorized", err)
	}
}

func TestCheckInStreak(t *testing.T) {
	clock := testClock()
	s := newTestService(clock)
	ctx := asCaller("alice")

	st, err := s.Create(ctx, CreateParams{Amount: 100, DurationDays: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.CheckIn(ctx, st.ID)
	if err != nil || got.StreakDays != 1 {
		t.Fatalf("first check-in = %+v, %v", got, err)
	}

	clock.T = clock.T.AddDate(0, 0, 1)
	got, err = s.CheckIn(ctx, st.ID)
	if err != nil || got.StreakDays != 2 {
		t.Fatalf("second check-in = %+v, %v", got, err)
	}

	clock.T = clock.T.AddDate(0, 0, 3)
	got, err = s.CheckIn(ctx, st.ID)
	if err != nil || got.StreakDays != 1 {
		t.Fatalf("check-in after gap = %+v, %v", got, err)
	}
}

func TestCompleteAndWithdraw(t *testing.T) {
	clock := testClock()
	s := newTestService(clock)
	ctx := asCaller("alice")

	st, err := s.Create(ctx, CreateParams{Amount: 100, DurationDays: 14})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Not matured yet.
	if _, err := s.Complete(ctx, st.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("early complete: got %v, want InvalidInput", err)
	}

	clock.T = clock.T.AddDate(0, 0, 15)
	got, err := s.Complete(ctx, st.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != domain.StakeCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}

	// Terminal states are final.
	if _, err := s.Withdraw(ctx, st.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("withdraw completed stake: got %v, want InvalidInput", err)
	}

	st2, _ := s.Create(ctx, CreateParams{Amount: 50, DurationDays: 14})
	got, err = s.Withdraw(ctx, st2.ID)
	if err != nil || got.Status != domain.StakeFailed {
		t.Errorf("withdraw = %+v, %v", got, err)
	}
}
