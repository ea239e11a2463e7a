// Package assessment manages question sets and graded submissions.
package assessment

import (
	"context"
	"errors"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

// Record store collections.
const (
	Collection        = "assessments"
	ResultsCollection = "assessment_results"
)

// Service handles assessment authoring and submission grading.
type Service struct {
	assessments *store.Table[domain.Assessment]
	results     *store.Table[domain.AssessmentResult]
	clock       domain.Clock
}

// NewService creates an assessment service over the given store.
func NewService(kv store.KV, clock domain.Clock) *Service {
	return &Service{
		assessments: store.NewTable[domain.Assessment](kv, Collection),
		results:     store.NewTable[domain.AssessmentResult](kv, ResultsCollection),
		clock:       clock,
	}
}

// CreateParams are the fields for a new assessment.
type CreateParams struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Questions    []domain.Question `json:"questions"`
	TimeLimit    uint64            `json:"time_limit"`
	PassingScore uint64            `json:"passing_score"`
	SkillID      string            `json:"skill_id"`
}

// Create stores a new assessment owned by the caller.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Assessment, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if p.Title == "" {
		return nil, domain.InvalidPayloadf("assessment title is required")
	}

	now := s.clock.Now()
	a := domain.Assessment{
		ID:           domain.NewID("assessment"),
		Title:        p.Title,
		Description:  p.Description,
		Questions:    p.Questions,
		TimeLimit:    p.TimeLimit,
		PassingScore: p.PassingScore,
		SkillID:      p.SkillID,
		CreatorID:    caller,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.assessments.Put(ctx, a.ID, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Get returns one assessment by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	a, err := s.assessments.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("assessment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns a page of assessments, optionally filtered by skill.
func (s *Service) List(ctx context.Context, skillID string, skip, limit uint64) (store.Page[domain.Assessment], error) {
	all, err := s.assessments.All(ctx)
	if err != nil {
		return store.Page[domain.Assessment]{}, err
	}
	return store.Paginate(all, skip, limit, func(a domain.Assessment) bool {
		return skillID == "" || a.SkillID == skillID
	}), nil
}

// Submit grades the caller's answers and persists the result.
func (s *Service) Submit(ctx context.Context, assessmentID string, answers []uint64, timeTaken uint64) (*domain.AssessmentResult, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.Get(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, domain.InvalidInputf("assessment %s is not active", assessmentID)
	}

	score := a.Score(answers)
	r := domain.AssessmentResult{
		ID:           domain.NewID("result"),
		AssessmentID: assessmentID,
		UserID:       caller,
		Answers:      answers,
		Score:        score,
		Passed:       score >= a.PassingScore,
		TimeTaken:    timeTaken,
		CompletedAt:  s.clock.Now(),
	}
	if err := s.results.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResults returns the caller's results, optionally filtered by
// assessment.
func (s *Service) ListResults(ctx context.Context, assessmentID string, skip, limit uint64) (store.Page[domain.AssessmentResult], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[domain.AssessmentResult]{}, err
	}
	all, err := s.results.All(ctx)
	if err != nil {
		return store.Page[domain.AssessmentResult]{}, err
	}
	return store.Paginate(all, skip, limit, func(r domain.AssessmentResult) bool {
		if r.UserID != caller {
			return false
		}
		return assessmentID == "" || r.AssessmentID == assessmentID
	}), nil
}
