// Package arena manages combat arenas, head-to-head skill battles, and the
// rewards battles pay out.
package arena

import (
	"context"
	"errors"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/store"
)

// Record store collections.
const (
	Collection        = "combat_arenas"
	BattlesCollection = "battles"
	RewardsCollection = "battle_rewards"
)

// Winner takes the pot: both stakes.
const potFactor = 2

// Service handles arenas and the battle lifecycle.
type Service struct {
	arenas  *store.Table[domain.CombatArena]
	battles *store.Table[domain.Battle]
	rewards *store.Table[domain.BattleReward]
	clock   domain.Clock
	events  events.Publisher

	// mu serializes battle transitions and reward claims.
	mu sync.Mutex
}

// NewService creates an arena service over the given store.
func NewService(kv store.KV, clock domain.Clock, pub events.Publisher) *Service {
	return &Service{
		arenas:  store.NewTable[domain.CombatArena](kv, Collection),
		battles: store.NewTable[domain.Battle](kv, BattlesCollection),
		rewards: store.NewTable[domain.BattleReward](kv, RewardsCollection),
		clock:   clock,
		events:  pub,
	}
}

// CreateArenaParams are the fields for a new arena.
type CreateArenaParams struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	SkillCategory string `json:"skill_category"`
	MinStake      uint64 `json:"min_stake"`
	MaxStake      uint64 `json:"max_stake"`
}

// CreateArena opens a new battle venue.
func (s *Service) CreateArena(ctx context.Context, p CreateArenaParams) (*domain.CombatArena, error) {
	if _, err := domain.CallerFrom(ctx); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, domain.InvalidPayloadf("arena name is required")
	}
	if p.MaxStake > 0 && p.MinStake > p.MaxStake {
		return nil, domain.InvalidPayloadf("min stake exceeds max stake")
	}

	a := domain.CombatArena{
		ID:            domain.NewID("arena"),
		Name:          p.Name,
		Description:   p.Description,
		SkillCategory: p.SkillCategory,
		MinStake:      p.MinStake,
		MaxStake:      p.MaxStake,
		IsActive:      true,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.arenas.Put(ctx, a.ID, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArena returns one arena by ID.
func (s *Service) GetArena(ctx context.Context, id string) (*domain.CombatArena, error) {
	a, err := s.arenas.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("arena %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArenas returns a page of arenas, optionally filtered by skill
// category.
func (s *Service) ListArenas(ctx context.Context, category string, skip, limit uint64) (store.Page[domain.CombatArena], error) {
	all, err := s.arenas.All(ctx)
	if err != nil {
		return store.Page[domain.CombatArena]{}, err
	}
	return store.Paginate(all, skip, limit, func(a domain.CombatArena) bool {
		return category == "" || a.SkillCategory == category
	}), nil
}

// ChallengeParams are the fields for a new battle challenge.
type ChallengeParams struct {
	ArenaID     string           `json:"arena_id"`
	OpponentID  domain.Principal `json:"opponent_id"`
	SkillID     string           `json:"skill_id"`
	StakeAmount uint64           `json:"stake_amount"`
}

// Challenge opens a pending battle from the caller against an opponent.
func (s *Service) Challenge(ctx context.Context, p ChallengeParams) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if p.OpponentID == caller {
		return nil, domain.InvalidInputf("cannot challenge yourself")
	}
	a, err := s.GetArena(ctx, p.ArenaID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, domain.InvalidInputf("arena %s is not active", a.ID)
	}
	if p.StakeAmount < a.MinStake {
		return nil, domain.InvalidPayloadf("stake below arena minimum of %d", a.MinStake)
	}
	if a.MaxStake > 0 && p.StakeAmount > a.MaxStake {
		return nil, domain.InvalidPayloadf("stake above arena maximum of %d", a.MaxStake)
	}

	b := domain.Battle{
		ID:           domain.NewID("battle"),
		ArenaID:      p.ArenaID,
		ChallengerID: caller,
		OpponentID:   p.OpponentID,
		SkillID:      p.SkillID,
		StakeAmount:  p.StakeAmount,
		Status:       domain.BattlePending,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.battles.Put(ctx, b.ID, b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Join accepts a pending challenge as the named opponent.
func (s *Service) Join(ctx context.Context, battleID string) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if err := b.Join(caller, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.battles.Put(ctx, b.ID, *b); err != nil {
		return nil, err
	}
	return b, nil
}

// Complete records the winner of a battle in progress and creates the
// winner's claimable reward.
func (s *Service) Complete(ctx context.Context, battleID string, winner domain.Principal) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := domain.CallerFrom(ctx); err != nil {
		return nil, err
	}
	b, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := b.Finish(winner, now); err != nil {
		return nil, err
	}
	if err := s.battles.Put(ctx, b.ID, *b); err != nil {
		return nil, err
	}

	r := domain.BattleReward{
		ID:        domain.NewID("battle_reward"),
		BattleID:  b.ID,
		UserID:    winner,
		Amount:    b.StakeAmount * potFactor,
		CreatedAt: now,
	}
	if err := s.rewards.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeBattleCompleted, winner.String(),
		map[string]string{"battle_id": b.ID, "reward_id": r.ID}))
	return b, nil
}

// Cancel withdraws a pending challenge as the challenger.
func (s *Service) Cancel(ctx context.Context, battleID string) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(caller, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.battles.Put(ctx, b.ID, *b); err != nil {
		return nil, err
	}
	return b, nil
}

// ClaimBattleReward claims a battle payout for its owner, once.
func (s *Service) ClaimBattleReward(ctx context.Context, rewardID string) (*domain.BattleReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.rewards.Get(ctx, rewardID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("battle reward %s not found", rewardID)
	}
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, r.UserID); err != nil {
		return nil, err
	}
	if err := r.MarkClaimed(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.rewards.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetBattle returns one battle by ID.
func (s *Service) GetBattle(ctx context.Context, id string) (*domain.Battle, error) {
	b, err := s.battles.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("battle %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListFilter narrows a battle listing. Zero values match everything.
type ListFilter struct {
	ArenaID string
	Status  string
}

// ListBattles returns a page of battles matching the filter.
func (s *Service) ListBattles(ctx context.Context, f ListFilter, skip, limit uint64) (store.Page[domain.Battle], error) {
	if f.Status != "" && !domain.ValidBattleStatus(f.Status) {
		return store.Page[domain.Battle]{}, domain.InvalidInputf("unknown battle status %q", f.Status)
	}
	all, err := s.battles.All(ctx)
	if err != nil {
		return store.Page[domain.Battle]{}, err
	}
	return store.Paginate(all, skip, limit, func(b domain.Battle) bool {
		if f.ArenaID != "" && b.ArenaID != f.ArenaID {
			return false
		}
		return f.Status == "" || b.Status == f.Status
	}), nil
}
