package domain

import "time"

// Skill is a creator-defined competency with an ordered learning path.
type Skill struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	Prerequisites []string  `json:"prerequisites"`
	LearningPath  []string  `json:"learning_path"` // ordered course/assessment IDs
	TotalXP       uint64    `json:"total_xp"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserSkill tracks one user's XP-driven progress on one skill, keyed by the
// (user, skill) composite key.
type UserSkill struct {
	ID                 string       `json:"id"`
	UserID             Principal    `json:"user_id"`
	SkillID            string       `json:"skill_id"`
	CurrentXP          uint64       `json:"current_xp"`
	MasteryLevel       MasteryLevel `json:"mastery_level"`
	ProgressPercentage uint64       `json:"progress_percentage"`
	CertificatesEarned []string     `json:"certificates_earned"`
	StartedAt          time.Time    `json:"started_at"`
	LastUpdated        time.Time    `json:"last_updated"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty"`
}

// GainXP adds XP and recomputes the derived mastery fields.
func (s *UserSkill) GainXP(xp uint64, now time.Time) {
	s.CurrentXP += xp
	s.MasteryLevel = MasteryForXP(s.CurrentXP)
	s.ProgressPercentage = ProgressForXP(s.CurrentXP)
	s.LastUpdated = now
	if s.ProgressPercentage >= 100 && s.CompletedAt == nil {
		t := now
		s.CompletedAt = &t
		s.CertificatesEarned = append(s.CertificatesEarned, "completion_certificate")
	}
}
