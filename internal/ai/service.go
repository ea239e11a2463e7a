package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/store"
)

// Record store collections.
const (
	PromptsCollection   = "ai_prompts"
	ResponsesCollection = "ai_responses"
	AgentsCollection    = "ai_agents"
)

// Service exposes the assistant operations and keeps the append-only
// prompt/response log.
type Service struct {
	cascade   *Cascade
	prompts   *store.Table[domain.AIPrompt]
	responses *store.Table[domain.AIResponse]
	agents    *store.Table[domain.AIAgent]
	clock     domain.Clock
}

// NewService creates an AI service over the given store and cascade.
func NewService(kv store.KV, cascade *Cascade, clock domain.Clock) *Service {
	return &Service{
		cascade:   cascade,
		prompts:   store.NewTable[domain.AIPrompt](kv, PromptsCollection),
		responses: store.NewTable[domain.AIResponse](kv, ResponsesCollection),
		agents:    store.NewTable[domain.AIAgent](kv, AgentsCollection),
		clock:     clock,
	}
}

// Interaction pairs a logged prompt with its response.
type Interaction struct {
	Prompt   domain.AIPrompt   `json:"prompt"`
	Response domain.AIResponse `json:"response"`
}

// run logs the prompt, executes the cascade, and logs the response. Both
// log records are append-only.
func (s *Service) run(ctx context.Context, caller domain.Principal, agentType, promptText, promptCtx string) (*Interaction, error) {
	now := s.clock.Now()
	p := domain.AIPrompt{
		ID:        domain.NewID("prompt"),
		UserID:    caller,
		AgentType: agentType,
		Content:   promptText,
		Context:   promptCtx,
		CreatedAt: now,
	}
	if err := s.prompts.Put(ctx, p.ID, p); err != nil {
		return nil, err
	}

	out, err := s.cascade.Generate(ctx, &Request{AgentType: agentType, Prompt: promptText, Context: promptCtx})
	if err != nil {
		return nil, domain.InvalidInputf("ai services unavailable, try again later")
	}

	r := domain.AIResponse{
		ID:         domain.NewID("response"),
		PromptID:   p.ID,
		Content:    out.Content,
		Source:     out.Source,
		Model:      out.Model,
		TokensUsed: out.TokensUsed,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.responses.Put(ctx, r.ID, r); err != nil {
		return nil, err
	}
	return &Interaction{Prompt: p, Response: r}, nil
}

// GenerateCourseContent produces a course outline for a topic.
func (s *Service) GenerateCourseContent(ctx context.Context, topic string, difficulty uint64) (*Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, domain.InvalidPayloadf("topic is required")
	}
	prompt := fmt.Sprintf("Generate comprehensive course content about %s at difficulty level %d. Include learning objectives, course structure, key concepts, and practical exercises.", topic, difficulty)
	return s.run(ctx, caller, domain.AgentContent, prompt, fmt.Sprintf("topic: %s, difficulty: %d", topic, difficulty))
}

// Validation is the structured outcome of an answer check.
type Validation struct {
	IsCorrect   bool     `json:"is_correct"`
	Similarity  float64  `json:"similarity"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// ValidateAnswer grades a free-text answer against the expected one. The
// similarity score is deterministic; the logged response carries it as
// JSON alongside the model feedback.
func (s *Service) ValidateAnswer(ctx context.Context, question, expected, answer string) (*Validation, *Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}

	prompt := fmt.Sprintf("Validate and provide feedback for this answer.\nQuestion: %s\nExpected Answer: %s\nUser Answer: %s", question, expected, answer)
	inter, err := s.run(ctx, caller, domain.AgentAssessment, prompt, "question: "+question)
	if err != nil {
		return nil, nil, err
	}

	v := scoreAnswer(expected, answer)
	if inter.Response.Source != "fallback" {
		v.Feedback = inter.Response.Content
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode validation: %w", err)
	}
	inter.Response.Content = string(raw)
	if err := s.responses.Put(ctx, inter.Response.ID, inter.Response); err != nil {
		return nil, nil, err
	}
	return &v, inter, nil
}

// scoreAnswer computes similarity: exact match, containment, then word
// overlap against the expected answer.
func scoreAnswer(expected, answer string) Validation {
	e := strings.ToLower(strings.TrimSpace(expected))
	a := strings.ToLower(strings.TrimSpace(answer))

	var similarity float64
	switch {
	case a == e:
		similarity = 1.0
	case e != "" && a != "" && (strings.Contains(a, e) || strings.Contains(e, a)):
		similarity = 0.7
	default:
		expectedWords := strings.Fields(e)
		answerWords := make(map[string]bool)
		for _, w := range strings.Fields(a) {
			answerWords[w] = true
		}
		common := 0
		for _, w := range expectedWords {
			if answerWords[w] {
				common++
			}
		}
		if len(expectedWords) > 0 {
			similarity = float64(common) / float64(len(expectedWords))
		}
	}

	v := Validation{IsCorrect: similarity > 0.8, Similarity: similarity}
	switch {
	case v.IsCorrect:
		v.Feedback = "Correct. Your answer demonstrates a solid understanding of the concept."
		v.Suggestions = []string{
			"Try more advanced questions on this topic",
			"Consider teaching this concept to reinforce your understanding",
		}
	case similarity > 0.5:
		v.Feedback = fmt.Sprintf("Partially correct. Your answer contains some correct elements (similarity %.0f%%) but could be more complete.", similarity*100)
		v.Suggestions = []string{
			"Review the key concepts related to this topic",
			"Practice with similar questions",
		}
	default:
		v.Feedback = fmt.Sprintf("Not quite right (similarity %.0f%%). Review the material and focus on the core concepts.", similarity*100)
		v.Suggestions = []string{
			"Review the key concepts related to this topic",
			"Practice with similar questions",
			"Ask for clarification if any part is unclear",
		}
	}
	return v
}

// NFTMetadata is the generated token description for a skill achievement.
type NFTMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Attributes  []MetadataTrait `json:"attributes"`
}

// MetadataTrait is one attribute of the token metadata.
type MetadataTrait struct {
	TraitType   string `json:"trait_type"`
	Value       any    `json:"value"`
	DisplayType string `json:"display_type,omitempty"`
}

// GenerateNFTMetadata builds deterministic token metadata for a mastered
// skill and logs the interaction.
func (s *Service) GenerateNFTMetadata(ctx context.Context, skillName string, masteryLevel uint64) (*NFTMetadata, *Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	if skillName == "" {
		return nil, nil, domain.InvalidPayloadf("skill name is required")
	}

	slug := strings.ReplaceAll(strings.ToLower(skillName), " ", "_")
	meta := NFTMetadata{
		Name:        fmt.Sprintf("%s Mastery - Level %d", skillName, masteryLevel),
		Description: fmt.Sprintf("This NFT certifies mastery of %s at level %d.", skillName, masteryLevel),
		Image:       fmt.Sprintf("https://icplearn.io/nft/skill/%s_%d.png", slug, masteryLevel),
		Attributes: []MetadataTrait{
			{TraitType: "Skill", Value: skillName},
			{TraitType: "Mastery Level", Value: masteryLevel},
			{TraitType: "Learning Boost", Value: masteryLevel * 5, DisplayType: "boost_percentage"},
		},
	}

	prompt := fmt.Sprintf("Generate NFT metadata for skill: %s at mastery level: %d", skillName, masteryLevel)
	inter, err := s.run(ctx, caller, domain.AgentContent, prompt, "")
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, nil, fmt.Errorf("encode metadata: %w", err)
	}
	inter.Response.Content = string(raw)
	if err := s.responses.Put(ctx, inter.Response.ID, inter.Response); err != nil {
		return nil, nil, err
	}
	return &meta, inter, nil
}

// LearningPathParams describe the learner a path is generated for.
type LearningPathParams struct {
	UserSkills          []string `json:"user_skills"`
	LearningGoals       []string `json:"learning_goals"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
	TimeCommitment      uint64   `json:"time_commitment"` // hours per week
}

// LearningPath is a personalized course and skill sequence.
type LearningPath struct {
	ID                     string           `json:"id"`
	UserID                 domain.Principal `json:"user_id"`
	RecommendedCourses     []string         `json:"recommended_courses"`
	SkillPriorities        []string         `json:"skill_priorities"`
	DifficultyProgression  string           `json:"difficulty_progression"`
	EstimatedTimelineWeeks uint64           `json:"estimated_timeline_weeks"`
	CreatedAt              time.Time        `json:"created_at"`
}

// GenerateLearningPath builds a personalized path from the caller's goals.
// Course and skill recommendations are keyed off goal keywords so the same
// goals always produce the same path; the interaction is logged like any
// other generation.
func (s *Service) GenerateLearningPath(ctx context.Context, p LearningPathParams) (*LearningPath, *Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	if p.TimeCommitment == 0 {
		return nil, nil, domain.InvalidPayloadf("time commitment must be greater than zero")
	}

	goals := strings.ToLower(strings.Join(p.LearningGoals, " "))

	var courses, skills []string
	if strings.Contains(goals, "blockchain") {
		courses = append(courses, "blockchain_fundamentals", "smart_contracts_101", "defi_protocols")
		skills = append(skills, "consensus_mechanisms", "cryptography", "distributed_systems")
	}
	if strings.Contains(goals, "icp") || strings.Contains(goals, "internet_computer") {
		courses = append(courses, "icp_architecture", "canister_development", "chain_fusion")
		skills = append(skills, "motoko_programming", "kybra_python", "frontend_integration")
	}
	if strings.Contains(goals, "defi") {
		courses = append(courses, "defi_fundamentals", "liquidity_pools", "yield_farming")
		skills = append(skills, "amm_protocols", "governance_tokens", "risk_management")
	}
	if len(courses) == 0 {
		courses = []string{"blockchain_basics", "web3_introduction", "smart_contract_security"}
		skills = []string{"programming_fundamentals", "blockchain_concepts", "security_practices"}
	}

	difficulty := p.PreferredDifficulty
	if difficulty == "" {
		difficulty = "beginner"
	}

	path := LearningPath{
		ID:                     domain.NewID("path"),
		UserID:                 caller,
		RecommendedCourses:     courses,
		SkillPriorities:        skills,
		DifficultyProgression:  fmt.Sprintf("Start with %s level, progress to intermediate, then advanced", difficulty),
		EstimatedTimelineWeeks: p.TimeCommitment * 12,
		CreatedAt:              s.clock.Now(),
	}

	prompt := fmt.Sprintf("Generate learning path for goals: %s with skills: %s",
		strings.Join(p.LearningGoals, ", "), strings.Join(p.UserSkills, ", "))
	inter, err := s.run(ctx, caller, domain.AgentCoach, prompt, "")
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(path)
	if err != nil {
		return nil, nil, fmt.Errorf("encode learning path: %w", err)
	}
	inter.Response.Content = string(raw)
	if err := s.responses.Put(ctx, inter.Response.ID, inter.Response); err != nil {
		return nil, nil, err
	}
	return &path, inter, nil
}

// AnalyzeLearningPattern produces a study-pattern report from performance
// data.
func (s *Service) AnalyzeLearningPattern(ctx context.Context, performance map[string]any) (*Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(performance)
	if err != nil {
		return nil, domain.InvalidPayloadf("performance data is not serializable")
	}
	prompt := fmt.Sprintf("Analyze learning pattern for user performance data: %s", raw)
	return s.run(ctx, caller, domain.AgentCoach, prompt, "")
}

// Chat sends a free-form tutoring message.
func (s *Service) Chat(ctx context.Context, message, chatContext string) (*Interaction, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, domain.InvalidPayloadf("message is required")
	}
	return s.run(ctx, caller, domain.AgentTutor, message, chatContext)
}

// AgentParams are the fields for a new assistant persona.
type AgentParams struct {
	Name         string  `json:"name"`
	AgentType    string  `json:"agent_type"`
	SystemPrompt string  `json:"system_prompt"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

// CreateAgent stores a configured assistant persona owned by the caller.
func (s *Service) CreateAgent(ctx context.Context, p AgentParams) (*domain.AIAgent, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, domain.InvalidPayloadf("agent name is required")
	}
	if !domain.ValidAgentType(p.AgentType) {
		return nil, domain.InvalidInputf("unknown agent type %q", p.AgentType)
	}

	now := s.clock.Now()
	a := domain.AIAgent{
		ID:           domain.NewID("agent"),
		Name:         p.Name,
		AgentType:    p.AgentType,
		SystemPrompt: p.SystemPrompt,
		Model:        p.Model,
		Temperature:  p.Temperature,
		IsActive:     true,
		CreatorID:    caller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.agents.Put(ctx, a.ID, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAgent returns one agent by ID.
func (s *Service) GetAgent(ctx context.Context, id string) (*domain.AIAgent, error) {
	a, err := s.agents.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("agent %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAgents returns a page of agents, optionally filtered by type.
func (s *Service) ListAgents(ctx context.Context, agentType string, skip, limit uint64) (store.Page[domain.AIAgent], error) {
	all, err := s.agents.All(ctx)
	if err != nil {
		return store.Page[domain.AIAgent]{}, err
	}
	return store.Paginate(all, skip, limit, func(a domain.AIAgent) bool {
		return agentType == "" || a.AgentType == agentType
	}), nil
}

// GetPrompt returns one logged prompt by ID.
func (s *Service) GetPrompt(ctx context.Context, id string) (*domain.AIPrompt, error) {
	p, err := s.prompts.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("prompt %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetResponse returns one logged response by ID.
func (s *Service) GetResponse(ctx context.Context, id string) (*domain.AIResponse, error) {
	r, err := s.responses.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("response %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListInteractions returns the caller's prompt/response pairs.
func (s *Service) ListInteractions(ctx context.Context, skip, limit uint64) (store.Page[Interaction], error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return store.Page[Interaction]{}, err
	}

	prompts, err := s.prompts.All(ctx)
	if err != nil {
		return store.Page[Interaction]{}, err
	}
	responses, err := s.responses.All(ctx)
	if err != nil {
		return store.Page[Interaction]{}, err
	}
	byPrompt := make(map[string]domain.AIResponse, len(responses))
	for _, r := range responses {
		byPrompt[r.PromptID] = r
	}

	var interactions []Interaction
	for _, p := range prompts {
		if p.UserID != caller {
			continue
		}
		interactions = append(interactions, Interaction{Prompt: p, Response: byPrompt[p.ID]})
	}
	return store.Paginate(interactions, skip, limit), nil
}

// Stats reports the cascade's per-source counters.
func (s *Service) Stats() Stats {
	return s.cascade.Stats()
}
