// Package skill manages the skill catalog and per-user XP progress.
package skill

import (
	"context"
	"errors"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

// Record store collections.
const (
	Collection           = "skills"
	UserSkillsCollection = "user_skills"
)

// Service handles the skill catalog and XP-driven user progress.
type Service struct {
	skills     *store.Table[domain.Skill]
	userSkills *store.Table[domain.UserSkill]
	clock      domain.Clock

	// mu serializes XP updates on the composite-keyed user skill records.
	mu sync.Mutex
}

// NewService creates a skill service over the given store.
func NewService(kv store.KV, clock domain.Clock) *Service {
	return &Service{
		skills:     store.NewTable[domain.Skill](kv, Collection),
		userSkills: store.NewTable[domain.UserSkill](kv, UserSkillsCollection),
		clock:      clock,
	}
}

// CreateParams are the fields for a new catalog skill.
type CreateParams struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Prerequisites []string `json:"prerequisites"`
	LearningPath  []string `json:"learning_path"`
	TotalXP       uint64   `json:"total_xp"`
}

// Create adds a skill to the catalog.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Skill, error) {
	if _, err := domain.CallerFrom(ctx); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, domain.InvalidPayloadf("skill name is required")
	}

	now := s.clock.Now()
	sk := domain.Skill{
		ID:            domain.NewID("skill"),
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Difficulty:    p.Difficulty,
		Prerequisites: p.Prerequisites,
		LearningPath:  p.LearningPath,
		TotalXP:       p.TotalXP,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.skills.Put(ctx, sk.ID, sk); err != nil {
		return nil, err
	}
	return &sk, nil
}

// Get returns one catalog skill by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Skill, error) {
	sk, err := s.skills.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("skill %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

// ListFilter narrows a skill listing. Zero values match everything.
type ListFilter struct {
	Category   string
	Difficulty string
}

// List returns a page of catalog skills matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter, skip, limit uint64) (store.Page[domain.Skill], error) {
	all, err := s.skills.All(ctx)
	if err != nil {
		return store.Page[domain.Skill]{}, err
	}
	return store.Paginate(all, skip, limit, func(sk domain.Skill) bool {
		if f.Category != "" && sk.Category != f.Category {
			return false
		}
		if f.Difficulty != "" && sk.Difficulty != f.Difficulty {
			return false
		}
		return true
	}), nil
}

// UpdateProgress adds XP to the caller's record for a skill, creating it on
// first touch, and recomputes mastery level and percentage.
func (s *Service) UpdateProgress(ctx context.Context, skillID string, xpGained uint64) (*domain.UserSkill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, skillID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	key := domain.RelationKey(caller, skillID)
	us, err := s.userSkills.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		us = domain.UserSkill{
			ID:                 domain.NewID("user_skill"),
			UserID:             caller,
			SkillID:            skillID,
			MasteryLevel:       domain.MasteryBeginner,
			CertificatesEarned: []string{},
			StartedAt:          now,
		}
	} else if err != nil {
		return nil, err
	}

	us.GainXP(xpGained, now)
	if err := s.userSkills.Put(ctx, key, us); err != nil {
		return nil, err
	}
	return &us, nil
}

// GetUserSkill returns the caller's progress on one skill.
func (s *Service) GetUserSkill(ctx context.Context, skillID string) (*domain.UserSkill, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	us, err := s.userSkills.Get(ctx, domain.RelationKey(caller, skillID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("no progress on skill %s", skillID)
	}
	if err != nil {
		return nil, err
	}
	return &us, nil
}

// ListUserSkills returns the caller's skill progress records, optionally
// filtered by mastery level.
func (s *Service) ListUserSkills(ctx context.Context, mastery domain.MasteryLevel, skip, limit uint64) (store.Page[domain.UserSkill], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[domain.UserSkill]{}, err
	}
	if mastery != "" && !domain.ValidMastery(mastery) {
		return store.Page[domain.UserSkill]{}, domain.InvalidInputf("unknown mastery level %q", mastery)
	}

	all, err := s.userSkills.All(ctx)
	if err != nil {
		return store.Page[domain.UserSkill]{}, err
	}
	return store.Paginate(all, skip, limit, func(us domain.UserSkill) bool {
		if us.UserID != caller {
			return false
		}
		if mastery != "" && us.MasteryLevel != mastery {
			return false
		}
		return true
	}), nil
}
