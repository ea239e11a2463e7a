// Package reward manages Bitcoin reward records and their two terminal
// transitions: processed on-chain or claimed to a wallet.
package reward

import (
	"context"
	"errors"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/store"
)

// Collection is the record store collection for rewards.
const Collection = "bitcoin_rewards"

// UserDirectory answers whether an identity has a registered account.
type UserDirectory interface {
	Exists(ctx context.Context, id domain.Principal) (bool, error)
}

// Service handles the reward lifecycle.
type Service struct {
	rewards *store.Table[domain.BitcoinReward]
	users   UserDirectory
	clock   domain.Clock
	events  events.Publisher

	// mu serializes transitions so a reward settles on exactly one of its
	// terminal states.
	mu sync.Mutex
}

// NewService creates a reward service over the given store.
func NewService(kv store.KV, users UserDirectory, clock domain.Clock, pub events.Publisher) *Service {
	return &Service{
		rewards: store.NewTable[domain.BitcoinReward](kv, Collection),
		users:   users,
		clock:   clock,
		events:  pub,
	}
}

// CreateParams are the fields for a new reward.
type CreateParams struct {
	UserID     domain.Principal `json:"user_id"`
	Amount     uint64           `json:"amount"` // satoshis
	RewardType string           `json:"reward_type"`
	SourceID   string           `json:"source_id"`
}

// Create records a pending reward for a registered user.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.BitcoinReward, error) {
	if _, err := domain.CallerFrom(ctx); err != nil {
		return nil, err
	}
	if p.Amount == 0 {
		return nil, domain.InvalidPayloadf("reward amount must be greater than zero")
	}
	ok, err := s.users.Exists(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundf("user %s not found", p.UserID)
	}

	r := domain.BitcoinReward{
		ID:         domain.NewID("btc_reward"),
		UserID:     p.UserID,
		Amount:     p.Amount,
		RewardType: p.RewardType,
		SourceID:   p.SourceID,
		Status:     domain.RewardPending,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.rewards.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeRewardCreated, p.UserID.String(),
		map[string]string{"reward_id": r.ID, "reward_type": r.RewardType}))
	return &r, nil
}

// Process settles a pending reward on-chain.
func (s *Service) Process(ctx context.Context, id, txHash string) (*domain.BitcoinReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := domain.CallerFrom(ctx); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Process(txHash, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.rewards.Put(ctx, r.ID, *r); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeRewardProcessed, r.UserID.String(),
		map[string]string{"reward_id": r.ID, "tx_hash": txHash}))
	return r, nil
}

// Claim sweeps one of the caller's pending rewards to a wallet address.
func (s *Service) Claim(ctx context.Context, id, walletAddress string) (*domain.BitcoinReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, r.UserID); err != nil {
		return nil, err
	}
	if err := r.Claim(walletAddress, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.rewards.Put(ctx, r.ID, *r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns one reward by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.BitcoinReward, error) {
	return s.load(ctx, id)
}

// ListFilter narrows a reward listing. Zero values match everything.
type ListFilter struct {
	UserID domain.Principal
	Status string
}

// List returns a page of rewards matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter, skip, limit uint64) (store.Page[domain.BitcoinReward], error) {
	all, err := s.rewards.All(ctx)
	if err != nil {
		return store.Page[domain.BitcoinReward]{}, err
	}
	return store.Paginate(all, skip, limit, func(r domain.BitcoinReward) bool {
		if f.UserID != "" && r.UserID != f.UserID {
			return false
		}
		return f.Status == "" || r.Status == f.Status
	}), nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.BitcoinReward, error) {
	r, err := s.rewards.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("reward %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
