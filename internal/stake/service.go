// Package stake manages neuro-stakes: token commitments against learning
// goals with streak tracking.
package stake

import (
	"context"
	"errors"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/store"
)

// Collection is the record store collection for stakes.
const Collection = "neuro_stakes"

// Base multiplier applied to a freshly created stake.
const baseRewardMultiplier = 1.0

// Service handles the stake lifecycle.
type Service struct {
	stakes *store.Table[domain.NeuroStake]
	clock  domain.Clock
	events events.Publisher

	// mu serializes lifecycle transitions on individual stakes.
	mu sync.Mutex
}

// NewService creates a stake service over the given store.
func NewService(kv store.KV, clock domain.Clock, pub events.Publisher) *Service {
	return &Service{
		stakes: store.NewTable[domain.NeuroStake](kv, Collection),
		clock:  clock,
		events: pub,
	}
}

// CreateParams are the fields for a new stake.
type CreateParams struct {
	Amount       uint64 `json:"amount"`
	SkillID      string `json:"skill_id"`
	DurationDays uint64 `json:"duration_days"`
}

// Create opens an active stake for the caller.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.NeuroStake, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	st := domain.NeuroStake{
		ID:               domain.NewID("stake"),
		UserID:           caller,
		Amount:           p.Amount,
		SkillID:          p.SkillID,
		DurationDays:     p.DurationDays,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, int(p.DurationDays)),
		Status:           domain.StakeActive,
		RewardMultiplier: baseRewardMultiplier,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := st.ValidateNew(); err != nil {
		return nil, err
	}
	if err := s.stakes.Put(ctx, st.ID, st); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeStakeCreated, caller.String(),
		map[string]string{"stake_id": st.ID, "skill_id": st.SkillID}))
	return &st, nil
}

// Get returns one of the caller's stakes.
func (s *Service) Get(ctx context.Context, id string) (*domain.NeuroStake, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, caller, id)
}

// List returns the caller's stakes, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, skip, limit uint64) (store.Page[domain.NeuroStake], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[domain.NeuroStake]{}, err
	}
	all, err := s.stakes.All(ctx)
	if err != nil {
		return store.Page[domain.NeuroStake]{}, err
	}
	return store.Paginate(all, skip, limit, func(st domain.NeuroStake) bool {
		if st.UserID != caller {
			return false
		}
		return status == "" || st.Status == status
	}), nil
}

// UpdateParams are the mutable fields of an active stake.
type UpdateParams struct {
	Amount       uint64 `json:"amount"`
	DurationDays uint64 `json:"duration_days"`
}

// Update amends an active stake owned by the caller. A rejected amendment
// leaves the stored record unchanged.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*domain.NeuroStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := st.Amend(p.Amount, p.DurationDays, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.stakes.Put(ctx, st.ID, *st); err != nil {
		return nil, err
	}
	return st, nil
}

// CheckIn records today's activity on an active stake.
func (s *Service) CheckIn(ctx context.Context, id string) (*domain.NeuroStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := st.CheckIn(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.stakes.Put(ctx, st.ID, *st); err != nil {
		return nil, err
	}
	return st, nil
}

// Complete settles a matured active stake as successful.
func (s *Service) Complete(ctx context.Context, id string) (*domain.NeuroStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if now.Before(st.EndDate) {
		return nil, domain.InvalidInputf("stake has not matured yet")
	}
	if err := st.Complete(now); err != nil {
		return nil, err
	}
	if err := s.stakes.Put(ctx, st.ID, *st); err != nil {
		return nil, err
	}
	return st, nil
}

// Withdraw forfeits an active stake before maturity.
func (s *Service) Withdraw(ctx context.Context, id string) (*domain.NeuroStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := st.Fail(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.stakes.Put(ctx, st.ID, *st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) owned(ctx context.Context, caller domain.Principal, id string) (*domain.NeuroStake, error) {
	st, err := s.stakes.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("stake %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, st.UserID); err != nil {
		return nil, err
	}
	return &st, nil
}
