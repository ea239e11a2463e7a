package domain

import "time"

// CourseModule is one unit of course content.
type CourseModule struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Order     uint64   `json:"order"`
	Duration  uint64   `json:"duration"` // minutes
	VideoURL  *string  `json:"video_url,omitempty"`
	Resources []string `json:"resources"`
}

// Course is a creator-owned content record. The ID is generated at creation
// and never reused; progress records reference it by ID without
// referential-integrity enforcement in the store.
type Course struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Modules           []CourseModule `json:"modules"`
	SkillID           string         `json:"skill_id"`
	Difficulty        string         `json:"difficulty"`
	EstimatedDuration uint64         `json:"estimated_duration"` // minutes
	CreatorID         Principal      `json:"creator_id"`
	IsPublished       bool           `json:"is_published"`
	EnrollmentCount   uint64         `json:"enrollment_count"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// CourseProgress tracks one user's relationship to one course, keyed by
// the (user, course) composite key. Progress only moves forward: module
// completion uses set semantics, and a completed course stays completed.
type CourseProgress struct {
	ID                 string     `json:"id"`
	CourseID           string     `json:"course_id"`
	UserID             Principal  `json:"user_id"`
	CompletedModules   []string   `json:"completed_modules"`
	ProgressPercentage uint64     `json:"progress_percentage"`
	StartedAt          time.Time  `json:"started_at"`
	LastAccessed       time.Time  `json:"last_accessed"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// Completed reports whether the progress record reached its terminal state.
func (p *CourseProgress) Completed() bool {
	return p.CompletedAt != nil
}

// MarkModule records a completed module exactly once and recomputes the
// percentage against the course's current module count.
func (p *CourseProgress) MarkModule(moduleID string, totalModules int, now time.Time) {
	for _, m := range p.CompletedModules {
		if m == moduleID {
			p.LastAccessed = now
			return
		}
	}
	p.CompletedModules = append(p.CompletedModules, moduleID)
	p.LastAccessed = now

	if totalModules > 0 {
		pct := uint64(len(p.CompletedModules)) * 100 / uint64(totalModules)
		if pct > p.ProgressPercentage {
			p.ProgressPercentage = pct
		}
	}
	if p.ProgressPercentage >= 100 && p.CompletedAt == nil {
		p.ProgressPercentage = 100
		t := now
		p.CompletedAt = &t
	}
}
