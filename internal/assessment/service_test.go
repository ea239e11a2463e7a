package assessment

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
	return NewService(store.NewMemory(store.Limits{}), clock)
}

func asCaller(p domain.Principal) context.Context {
	return domain.WithPrincipal(context.Background(), p)
}

func createAssessment(t *testing.T, s *Service, ctx context.Context, passing uint64) *domain.Assessment {
	t.Helper()
	a, err := s.Create(ctx, CreateParams{
		Title:   "Go quiz",
		SkillID: "skill_go",
		Questions: []domain.Question{
			{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
			{ID: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
		PassingScore: passing,
	})
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	return a
}

func TestCreateValidation(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	_, err := s.Create(ctx, CreateParams{
		Title:        "bad",
		Questions:    []domain.Question{{ID: "q1", Options: []string{"a"}, CorrectAnswer: 0}},
		PassingScore: 150,
	})
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("passing score 150: got %v, want InvalidPayload", err)
	}

	_, err = s.Create(ctx, CreateParams{Title: "bad", PassingScore: 60})
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("no questions: got %v, want InvalidPayload", err)
	}
}

func TestSubmit(t *testing.T) {
	s := newTestService()
	a := createAssessment(t, s, asCaller("alice"), 60)
	ctx := asCaller("bob")

	r, err := s.Submit(ctx, a.ID, []uint64{0, 1}, 120)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.Score != 100 || !r.Passed {
		t.Errorf("result = %+v", r)
	}

	r, err = s.Submit(ctx, a.ID, []uint64{0, 0}, 90)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if r.Score != 50 || r.Passed {
		t.Errorf("failing result = %+v", r)
	}

	if _, err := s.Submit(ctx, "assessment_missing", nil, 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown assessment: got %v, want NotFound", err)
	}
}

func TestListResults(t *testing.T) {
	s := newTestService()
	a := createAssessment(t, s, asCaller("alice"), 50)
	b := createAssessment(t, s, asCaller("alice"), 50)

	s.Submit(asCaller("bob"), a.ID, []uint64{0, 1}, 10)
	s.Submit(asCaller("bob"), b.ID, []uint64{0, 0}, 10)
	s.Submit(asCaller("carol"), a.ID, []uint64{1, 0}, 10)

	page, err := s.ListResults(asCaller("bob"), "", 0, 10)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("Total = %d, want caller's 2", page.Total)
	}

	page, _ = s.ListResults(asCaller("bob"), a.ID, 0, 10)
	if page.Total != 1 || page.Items[0].AssessmentID != a.ID {
		t.Errorf("filtered = %+v", page)
	}
}
