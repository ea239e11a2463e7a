package nft

import (
	"context"
	"errors"
	"fmt"
	"sync"
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

func TestMintGenesis(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	n, err := s.MintGenesis(ctx, MintGenesisParams{Rarity: domain.RarityRare, IsStakeBoost: true, BoostFactor: 1.5})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if n.TokenID != 1 || n.Rarity != "rare" {
		t.Errorf("nft = %+v", n)
	}

	got, err := s.GetGenesis(ctx, n.ID)
	if err != nil || got.ID != n.ID {
		t.Errorf("get = %+v, %v", got, err)
	}

	n2, err := s.MintGenesis(asCaller("bob"), MintGenesisParams{Rarity: domain.RarityCommon})
	if err != nil {
		t.Fatalf("second mint: %v", err)
	}
	if n2.TokenID != 2 {
		t.Errorf("TokenID = %d, want 2", n2.TokenID)
	}

	if _, err := s.MintGenesis(ctx, MintGenesisParams{Rarity: "mythic"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad rarity: got %v, want InvalidInput", err)
	}
}

func TestMintSkill(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	n, err := s.MintSkill(ctx, MintSkillParams{SkillID: "skill_go", MasteryLevel: "expert", Rarity: domain.RarityLegendary})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if n.SkillID != "skill_go" || n.Rarity != "legendary" {
		t.Errorf("nft = %+v", n)
	}

	if _, err := s.MintSkill(ctx, MintSkillParams{MasteryLevel: "expert", Rarity: domain.RarityEpic}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("missing skill_id: got %v, want InvalidPayload", err)
	}
}

func TestListOnlyCallers(t *testing.T) {
	s := newTestService()

	s.MintGenesis(asCaller("alice"), MintGenesisParams{Rarity: domain.RarityCommon})
	s.MintGenesis(asCaller("alice"), MintGenesisParams{Rarity: domain.RarityRare})
	s.MintGenesis(asCaller("bob"), MintGenesisParams{Rarity: domain.RarityEpic})

	page, err := s.ListGenesis(asCaller("alice"), 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("Total = %d, want 2", page.Total)
	}
	for _, n := range page.Items {
		if n.UserID != "alice" {
			t.Errorf("foreign NFT in caller listing: %+v", n)
		}
	}
}

func TestMintGenesisConcurrentTokenIDs(t *testing.T) {
	s := newTestService()

	const n = 8
	tokens := make([]uint64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := asCaller(domain.Principal(fmt.Sprintf("user-%d", i)))
			nft, err := s.MintGenesis(ctx, MintGenesisParams{Rarity: domain.RarityCommon})
			if err != nil {
				errs[i] = err
				return
			}
			tokens[i] = nft.TokenID
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("mint %d: %v", i, errs[i])
		}
		if tokens[i] < 1 || tokens[i] > n {
			t.Errorf("token ID %d out of range 1..%d", tokens[i], n)
		}
		if seen[tokens[i]] {
			t.Errorf("token ID %d minted twice", tokens[i])
		}
		seen[tokens[i]] = true
	}
}
