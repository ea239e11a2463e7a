package course

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
	return NewService(store.NewMemory(store.Limits{}), clock)
}

func asCaller(p domain.Principal) context.Context {
	return domain.WithPrincipal(context.Background(), p)
}

func threeModuleCourse(t *testing.T, s *Service, ctx context.Context, published bool) *domain.Course {
	t.Helper()
	c, err := s.Create(ctx, CreateParams{
		Title:      "Intro to Go",
		SkillID:    "skill_go",
		Difficulty: "beginner",
		Modules: []domain.CourseModule{
			{ID: "m1", Title: "Basics", Order: 1},
			{ID: "m2", Title: "Types", Order: 2},
			{ID: "m3", Title: "Concurrency", Order: 3},
		},
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

func TestCreateGetRoundtrip(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	c := threeModuleCourse(t, s, ctx, true)
	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Intro to Go" || got.CreatorID != "alice" || len(got.Modules) != 3 {
		t.Errorf("course = %+v", got)
	}

	if _, err := s.Get(ctx, "course_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing course: got %v, want NotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestService()
	ctx := asCaller("alice")

	threeModuleCourse(t, s, ctx, true)
	threeModuleCourse(t, s, ctx, false)
	s.Create(ctx, CreateParams{Title: "Rust", SkillID: "skill_rust", Difficulty: "advanced", IsPublished: true})

	page, err := s.List(ctx, ListFilter{PublishedOnly: true}, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("published Total = %d, want 2", page.Total)
	}

	page, _ = s.List(ctx, ListFilter{SkillID: "skill_go"}, 0, 10)
	if page.Total != 2 {
		t.Errorf("skill filter Total = %d, want 2", page.Total)
	}

	page, _ = s.List(ctx, ListFilter{SkillID: "skill_go", Difficulty: "advanced"}, 0, 10)
	if page.Total != 0 {
		t.Errorf("conjunctive filter Total = %d, want 0", page.Total)
	}
}

func TestUpdateOwnerOnly(t *testing.T) {
	s := newTestService()
	c := threeModuleCourse(t, s, asCaller("alice"), false)

	published := true
	if _, err := s.Update(asCaller("bob"), c.ID, UpdateParams{IsPublished: &published}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-owner update: got %v, want Unauthorized", err)
	}

	got, err := s.Update(asCaller("alice"), c.ID, UpdateParams{IsPublished: &published})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if !got.IsPublished {
		t.Error("IsPublished not updated")
	}
	if got.Title != "Intro to Go" {
		t.Errorf("Title changed by partial update: %s", got.Title)
	}
}

func TestEnroll(t *testing.T) {
	s := newTestService()
	c := threeModuleCourse(t, s, asCaller("alice"), true)
	ctx := asCaller("bob")

	p, err := s.Enroll(ctx, c.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if p.UserID != "bob" || p.CourseID != c.ID {
		t.Errorf("progress = %+v", p)
	}

	got, _ := s.Get(ctx, c.ID)
	if got.EnrollmentCount != 1 {
		t.Errorf("EnrollmentCount = %d, want 1", got.EnrollmentCount)
	}

	// Re-enrolling returns the existing record without double counting.
	p2, err := s.Enroll(ctx, c.ID)
	if err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	if p2.ID != p.ID {
		t.Error("re-enroll created a second progress record")
	}
	got, _ = s.Get(ctx, c.ID)
	if got.EnrollmentCount != 1 {
		t.Errorf("EnrollmentCount = %d after re-enroll, want 1", got.EnrollmentCount)
	}
}

func TestUpdateProgress(t *testing.T) {
	s := newTestService()
	c := threeModuleCourse(t, s, asCaller("alice"), true)
	ctx := asCaller("bob")

	if _, err := s.UpdateProgress(ctx, c.ID, "m1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("progress before enroll: got %v, want NotFound", err)
	}

	if _, err := s.Enroll(ctx, c.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := s.UpdateProgress(ctx, c.ID, "m9"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown module: got %v, want InvalidInput", err)
	}

	p, err := s.UpdateProgress(ctx, c.ID, "m1")
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if p.ProgressPercentage != 33 {
		t.Errorf("ProgressPercentage = %d, want 33", p.ProgressPercentage)
	}

	s.UpdateProgress(ctx, c.ID, "m2")
	p, _ = s.UpdateProgress(ctx, c.ID, "m3")
	if p.ProgressPercentage != 100 || p.CompletedAt == nil {
		t.Errorf("final progress = %+v", p)
	}

	// Progress survives a separate read.
	p, err = s.GetProgress(ctx, c.ID)
	if err != nil || !p.Completed() {
		t.Errorf("GetProgress = %+v, %v", p, err)
	}
}

func TestEnrollConcurrentCount(t *testing.T) {
	s := newTestService()
	c := threeModuleCourse(t, s, asCaller("author"), true)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := asCaller(domain.Principal(fmt.Sprintf("student-%d", i)))
			if _, err := s.Enroll(ctx, c.ID); err != nil {
				t.Errorf("enroll %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.Get(asCaller("author"), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EnrollmentCount != n {
		t.Errorf("EnrollmentCount = %d, want %d", got.EnrollmentCount, n)
	}
}
