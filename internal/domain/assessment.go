package domain

import "time"

// Question is a multiple-choice question embedded in an assessment.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer uint64   `json:"correct_answer"` // index into Options
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	SkillID       string   `json:"skill_id"`
}

// Assessment is a creator-owned question set with a passing threshold.
type Assessment struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions"`
	TimeLimit    uint64     `json:"time_limit"`    // seconds
	PassingScore uint64     `json:"passing_score"` // percentage, 0-100
	SkillID      string     `json:"skill_id"`
	CreatorID    Principal  `json:"creator_id"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Validate checks the domain constraints on a new assessment.
func (a *Assessment) Validate() error {
	if a.PassingScore > 100 {
		return InvalidPayloadf("passing score must be between 0 and 100")
	}
	if len(a.Questions) == 0 {
		return InvalidPayloadf("assessment needs at least one question")
	}
	for _, q := range a.Questions {
		if len(q.Options) == 0 {
			return InvalidPayloadf("question %s has no options", q.ID)
		}
		if q.CorrectAnswer >= uint64(len(q.Options)) {
			return InvalidPayloadf("question %s correct answer index out of range", q.ID)
		}
	}
	return nil
}

// Score grades a list of selected-option indexes against the question set.
// The result is a 0-100 percentage; extra answers beyond the question count
// are ignored.
func (a *Assessment) Score(answers []uint64) uint64 {
	if len(a.Questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range a.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return uint64(correct) * 100 / uint64(len(a.Questions))
}

// AssessmentResult records one submission by one user.
type AssessmentResult struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id"`
	UserID       Principal `json:"user_id"`
	Answers      []uint64  `json:"answers"`
	Score        uint64    `json:"score"`
	Passed       bool      `json:"passed"`
	TimeTaken    uint64    `json:"time_taken"` // seconds
	CompletedAt  time.Time `json:"completed_at"`
}
