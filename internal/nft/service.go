// Package nft manages append-only mint records for genesis and skill NFTs.
package nft

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
	GenesisCollection = "genesis_nfts"
	SkillCollection   = "skill_nfts"
)

// Service mints and lists NFTs. Mint records are never updated or deleted.
type Service struct {
	genesis *store.Table[domain.GenesisNFT]
	skills  *store.Table[domain.SkillNFT]
	clock   domain.Clock
	events  events.Publisher

	// mu serializes mints so token IDs stay sequential and unique.
	mu sync.Mutex
}

// NewService creates an NFT service over the given store.
func NewService(kv store.KV, clock domain.Clock, pub events.Publisher) *Service {
	return &Service{
		genesis: store.NewTable[domain.GenesisNFT](kv, GenesisCollection),
		skills:  store.NewTable[domain.SkillNFT](kv, SkillCollection),
		clock:   clock,
		events:  pub,
	}
}

// MintGenesisParams are the fields for a genesis mint.
type MintGenesisParams struct {
	Rarity       string            `json:"rarity"`
	Metadata     map[string]string `json:"metadata"`
	IsStakeBoost bool              `json:"is_stake_boost"`
	BoostFactor  float64           `json:"boost_factor"`
}

// MintGenesis mints the caller's membership NFT.
func (s *Service) MintGenesis(ctx context.Context, p MintGenesisParams) (*domain.GenesisNFT, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRarity(p.Rarity) {
		return nil, domain.InvalidInputf("unknown rarity %q", p.Rarity)
	}

	minted, err := s.genesis.All(ctx)
	if err != nil {
		return nil, err
	}
	n := domain.GenesisNFT{
		ID:           domain.NewID("genesis_nft"),
		UserID:       caller,
		TokenID:      uint64(len(minted)) + 1,
		Metadata:     p.Metadata,
		Rarity:       p.Rarity,
		MintedAt:     s.clock.Now(),
		IsStakeBoost: p.IsStakeBoost,
		BoostFactor:  p.BoostFactor,
	}
	if err := s.genesis.Put(ctx, n.ID, n); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeNFTMinted, caller.String(),
		map[string]string{"nft_id": n.ID, "kind": "genesis", "rarity": n.Rarity}))
	return &n, nil
}

// GetGenesis returns one genesis NFT by ID.
func (s *Service) GetGenesis(ctx context.Context, id string) (*domain.GenesisNFT, error) {
	n, err := s.genesis.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("genesis NFT %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListGenesis returns the caller's genesis NFTs.
func (s *Service) ListGenesis(ctx context.Context, skip, limit uint64) (store.Page[domain.GenesisNFT], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[domain.GenesisNFT]{}, err
	}
	all, err := s.genesis.All(ctx)
	if err != nil {
		return store.Page[domain.GenesisNFT]{}, err
	}
	return store.Paginate(all, skip, limit, func(n domain.GenesisNFT) bool {
		return n.UserID == caller
	}), nil
}

// MintSkillParams are the fields for a skill-achievement mint.
type MintSkillParams struct {
	SkillID      string            `json:"skill_id"`
	MasteryLevel string            `json:"mastery_level"`
	Rarity       string            `json:"rarity"`
	Metadata     map[string]string `json:"metadata"`
}

// MintSkill mints an achievement NFT for a mastered skill.
func (s *Service) MintSkill(ctx context.Context, p MintSkillParams) (*domain.SkillNFT, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRarity(p.Rarity) {
		return nil, domain.InvalidInputf("unknown rarity %q", p.Rarity)
	}
	if p.SkillID == "" {
		return nil, domain.InvalidPayloadf("skill_id is required")
	}

	minted, err := s.skills.All(ctx)
	if err != nil {
		return nil, err
	}
	n := domain.SkillNFT{
		ID:           domain.NewID("skill_nft"),
		UserID:       caller,
		SkillID:      p.SkillID,
		TokenID:      uint64(len(minted)) + 1,
		MasteryLevel: p.MasteryLevel,
		Metadata:     p.Metadata,
		Rarity:       p.Rarity,
		MintedAt:     s.clock.Now(),
	}
	if err := s.skills.Put(ctx, n.ID, n); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeNFTMinted, caller.String(),
		map[string]string{"nft_id": n.ID, "kind": "skill", "skill_id": n.SkillID}))
	return &n, nil
}

// GetSkill returns one skill NFT by ID.
func (s *Service) GetSkill(ctx context.Context, id string) (*domain.SkillNFT, error) {
	n, err := s.skills.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("skill NFT %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListSkill returns the caller's skill NFTs.
func (s *Service) ListSkill(ctx context.Context, skip, limit uint64) (store.Page[domain.SkillNFT], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[domain.SkillNFT]{}, err
	}
	all, err := s.skills.All(ctx)
	if err != nil {
		return store.Page[domain.SkillNFT]{}, err
	}
	return store.Paginate(all, skip, limit, func(n domain.SkillNFT) bool {
		return n.UserID == caller
	}), nil
}
