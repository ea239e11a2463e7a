// Package course manages courses, enrollment, and per-user progress.
package course

import (
	"context"
	"errors"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

// Record store collections.
const (
	Collection         = "courses"
	ProgressCollection = "course_progress"
)

// Service handles course CRUD, enrollment, and progress tracking.
type Service struct {
	courses  *store.Table[domain.Course]
	progress *store.Table[domain.CourseProgress]
	clock    domain.Clock

	// mu serializes writes; enrollment counts and progress percentages are
	// read-modify-write.
	mu sync.Mutex
}

// NewService creates a course service over the given store.
func NewService(kv store.KV, clock domain.Clock) *Service {
	return &Service{
		courses:  store.NewTable[domain.Course](kv, Collection),
		progress: store.NewTable[domain.CourseProgress](kv, ProgressCollection),
		clock:    clock,
	}
}

// CreateParams are the fields for a new course.
type CreateParams struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Modules           []domain.CourseModule `json:"modules"`
	SkillID           string                `json:"skill_id"`
	Difficulty        string                `json:"difficulty"`
	EstimatedDuration uint64                `json:"estimated_duration"`
	IsPublished       bool                  `json:"is_published"`
}

// Create stores a new course owned by the caller.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Course, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if p.Title == "" {
		return nil, domain.InvalidPayloadf("course title is required")
	}

	now := s.clock.Now()
	c := domain.Course{
		ID:                domain.NewID("course"),
		Title:             p.Title,
		Description:       p.Description,
		Modules:           p.Modules,
		SkillID:           p.SkillID,
		Difficulty:        p.Difficulty,
		EstimatedDuration: p.EstimatedDuration,
		CreatorID:         caller,
		IsPublished:       p.IsPublished,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.courses.Put(ctx, c.ID, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns one course by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Course, error) {
	c, err := s.courses.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("course %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFilter narrows a course listing. Zero values match everything.
type ListFilter struct {
	SkillID       string
	Difficulty    string
	PublishedOnly bool
}

// List returns a page of courses matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter, skip, limit uint64) (store.Page[domain.Course], error) {
	all, err := s.courses.All(ctx)
	if err != nil {
		return store.Page[domain.Course]{}, err
	}
	return store.Paginate(all, skip, limit, func(c domain.Course) bool {
		if f.SkillID != "" && c.SkillID != f.SkillID {
			return false
		}
		if f.Difficulty != "" && c.Difficulty != f.Difficulty {
			return false
		}
		if f.PublishedOnly && !c.IsPublished {
			return false
		}
		return true
	}), nil
}

// UpdateParams are the optional fields of a course update.
type UpdateParams struct {
	Title             *string                `json:"title,omitempty"`
	Description       *string                `json:"description,omitempty"`
	Modules           *[]domain.CourseModule `json:"modules,omitempty"`
	Difficulty        *string                `json:"difficulty,omitempty"`
	EstimatedDuration *uint64                `json:"estimated_duration,omitempty"`
	IsPublished       *bool                  `json:"is_published,omitempty"`
}

// Update applies a partial update. Only the course creator may update.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, c.CreatorID); err != nil {
		return nil, err
	}

	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Modules != nil {
		c.Modules = *p.Modules
	}
	if p.Difficulty != nil {
		c.Difficulty = *p.Difficulty
	}
	if p.EstimatedDuration != nil {
		c.EstimatedDuration = *p.EstimatedDuration
	}
	if p.IsPublished != nil {
		c.IsPublished = *p.IsPublished
	}
	c.UpdatedAt = s.clock.Now()

	if err := s.courses.Put(ctx, c.ID, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// Enroll starts the caller on a course. Enrolling twice returns the
// existing progress record without bumping the enrollment count again.
func (s *Service) Enroll(ctx context.Context, courseID string) (*domain.CourseProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	key := domain.RelationKey(caller, courseID)
	existing, err := s.progress.Get(ctx, key)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	p := domain.CourseProgress{
		ID:               domain.NewID("progress"),
		CourseID:         courseID,
		UserID:           caller,
		CompletedModules: []string{},
		StartedAt:        now,
		LastAccessed:     now,
	}
	if err := s.progress.Put(ctx, key, p); err != nil {
		return nil, err
	}

	c.EnrollmentCount++
	if err := s.courses.Put(ctx, c.ID, *c); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProgress marks a module complete for the caller. Completing the
// same module twice is a no-op; percentage never decreases.
func (s *Service) UpdateProgress(ctx context.Context, courseID, moduleID string) (*domain.CourseProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, m := range c.Modules {
		if m.ID == moduleID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.InvalidInputf("module %s is not part of course %s", moduleID, courseID)
	}

	key := domain.RelationKey(caller, courseID)
	p, err := s.progress.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("not enrolled in course %s", courseID)
	}
	if err != nil {
		return nil, err
	}

	p.MarkModule(moduleID, len(c.Modules), s.clock.Now())
	if err := s.progress.Put(ctx, key, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProgress returns the caller's progress on a course.
func (s *Service) GetProgress(ctx context.Context, courseID string) (*domain.CourseProgress, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.progress.Get(ctx, domain.RelationKey(caller, courseID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("not enrolled in course %s", courseID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
