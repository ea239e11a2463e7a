package domain

import "time"

// AI agent kinds recognized by the platform. Each drives a distinct
// fallback template when no model backend is reachable.
const (
	AgentTutor      = "tutor"
	AgentAssessment = "assessment"
	AgentContent    = "content"
	AgentCoach      = "coach"
)

// ValidAgentType reports whether v is a recognized agent kind.
func ValidAgentType(v string) bool {
	switch v {
	case AgentTutor, AgentAssessment, AgentContent, AgentCoach:
		return true
	}
	return false
}

// AIAgent is a configured assistant persona.
type AIAgent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AgentType    string    `json:"agent_type"`
	SystemPrompt string    `json:"system_prompt"`
	Model        string    `json:"model"`
	Temperature  float64   `json:"temperature"`
	IsActive     bool      `json:"is_active"`
	CreatorID    Principal `json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AIPrompt is one request sent to the AI subsystem. Prompts are append
// only; the linked response carries the outcome.
type AIPrompt struct {
	ID        string    `json:"id"`
	UserID    Principal `json:"user_id"`
	AgentType string    `json:"agent_type"`
	Content   string    `json:"content"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

// AIResponse is the stored outcome of a prompt, including which backend
// in the cascade produced it.
type AIResponse struct {
	ID         string    `json:"id"`
	PromptID   string    `json:"prompt_id"`
	Content    string    `json:"content"`
	Source     string    `json:"source"` // canister, external, fallback
	Model      string    `json:"model"`
	TokensUsed uint64    `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}
