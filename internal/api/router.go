package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/icplearn/backend/internal/api/handlers"
	"github.com/icplearn/backend/internal/api/middleware"
)

// Router wraps the HTTP multiplexer with middleware and handlers.
type Router struct {
	mux *http.ServeMux
	app *App

	users       *handlers.UserHandler
	courses     *handlers.CourseHandler
	skills      *handlers.SkillHandler
	assessments *handlers.AssessmentHandler
	stakes      *handlers.StakeHandler
	nfts        *handlers.NFTHandler
	rewards     *handlers.RewardHandler
	arena       *handlers.ArenaHandler
	ai          *handlers.AIHandler
}

// NewRouter creates the API router with all routes configured.
func NewRouter(app *App) http.Handler {
	r := &Router{
		mux: http.NewServeMux(),
		app: app,

		users:       handlers.NewUserHandler(app.Users),
		courses:     handlers.NewCourseHandler(app.Courses),
		skills:      handlers.NewSkillHandler(app.Skills),
		assessments: handlers.NewAssessmentHandler(app.Assessments),
		stakes:      handlers.NewStakeHandler(app.Stakes),
		nfts:        handlers.NewNFTHandler(app.NFTs),
		rewards:     handlers.NewRewardHandler(app.Rewards),
		arena:       handlers.NewArenaHandler(app.Arena),
		ai:          handlers.NewAIHandler(app.AI),
	}

	r.registerRoutes()

	return r.buildMiddlewareChain(r.mux)
}

func (r *Router) registerRoutes() {
	r.mux.HandleFunc("GET /health", r.handleHealth)

	// Users
	r.mux.HandleFunc("POST /api/v1/users", r.users.Register)
	r.mux.HandleFunc("GET /api/v1/users", r.users.List)
	r.mux.HandleFunc("GET /api/v1/users/me", r.users.Me)
	r.mux.HandleFunc("PATCH /api/v1/users/me", r.users.Update)
	r.mux.HandleFunc("GET /api/v1/users/{id}", r.users.Get)

	// Courses and enrollment
	r.mux.HandleFunc("POST /api/v1/courses", r.courses.Create)
	r.mux.HandleFunc("GET /api/v1/courses", r.courses.List)
	r.mux.HandleFunc("GET /api/v1/courses/{id}", r.courses.Get)
	r.mux.HandleFunc("PATCH /api/v1/courses/{id}", r.courses.Update)
	r.mux.HandleFunc("POST /api/v1/courses/{id}/enroll", r.courses.Enroll)
	r.mux.HandleFunc("POST /api/v1/courses/{id}/progress", r.courses.UpdateProgress)
	r.mux.HandleFunc("GET /api/v1/courses/{id}/progress", r.courses.GetProgress)

	// Skills and per-user mastery
	r.mux.HandleFunc("POST /api/v1/skills", r.skills.Create)
	r.mux.HandleFunc("GET /api/v1/skills", r.skills.List)
	r.mux.HandleFunc("GET /api/v1/skills/{id}", r.skills.Get)
	r.mux.HandleFunc("POST /api/v1/skills/{id}/progress", r.skills.UpdateProgress)
	r.mux.HandleFunc("GET /api/v1/skills/{id}/progress", r.skills.GetUserSkill)
	r.mux.HandleFunc("GET /api/v1/user-skills", r.skills.ListUserSkills)

	// Assessments
	r.mux.HandleFunc("POST /api/v1/assessments", r.assessments.Create)
	r.mux.HandleFunc("GET /api/v1/assessments", r.assessments.List)
	r.mux.HandleFunc("GET /api/v1/assessments/{id}", r.assessments.Get)
	r.mux.HandleFunc("POST /api/v1/assessments/{id}/submit", r.assessments.Submit)
	r.mux.HandleFunc("GET /api/v1/assessment-results", r.assessments.ListResults)

	// Neuro stakes
	r.mux.HandleFunc("POST /api/v1/stakes", r.stakes.Create)
	r.mux.HandleFunc("GET /api/v1/stakes", r.stakes.List)
	r.mux.HandleFunc("GET /api/v1/stakes/{id}", r.stakes.Get)
	r.mux.HandleFunc("PATCH /api/v1/stakes/{id}", r.stakes.Update)
	r.mux.HandleFunc("POST /api/v1/stakes/{id}/checkin", r.stakes.CheckIn)
	r.mux.HandleFunc("POST /api/v1/stakes/{id}/complete", r.stakes.Complete)
	r.mux.HandleFunc("POST /api/v1/stakes/{id}/withdraw", r.stakes.Withdraw)

	// NFTs
	r.mux.HandleFunc("POST /api/v1/nfts/genesis", r.nfts.MintGenesis)
	r.mux.HandleFunc("GET /api/v1/nfts/genesis", r.nfts.ListGenesis)
	r.mux.HandleFunc("GET /api/v1/nfts/genesis/{id}", r.nfts.GetGenesis)
	r.mux.HandleFunc("POST /api/v1/nfts/skill", r.nfts.MintSkill)
	r.mux.HandleFunc("GET /api/v1/nfts/skill", r.nfts.ListSkill)
	r.mux.HandleFunc("GET /api/v1/nfts/skill/{id}", r.nfts.GetSkill)

	// Bitcoin rewards
	r.mux.HandleFunc("POST /api/v1/rewards", r.rewards.Create)
	r.mux.HandleFunc("GET /api/v1/rewards", r.rewards.List)
	r.mux.HandleFunc("GET /api/v1/rewards/{id}", r.rewards.Get)
	r.mux.HandleFunc("POST /api/v1/rewards/{id}/process", r.rewards.Process)
	r.mux.HandleFunc("POST /api/v1/rewards/{id}/claim", r.rewards.Claim)

	// Arenas and battles
	r.mux.HandleFunc("POST /api/v1/arenas", r.arena.CreateArena)
	r.mux.HandleFunc("GET /api/v1/arenas", r.arena.ListArenas)
	r.mux.HandleFunc("GET /api/v1/arenas/{id}", r.arena.GetArena)
	r.mux.HandleFunc("POST /api/v1/battles", r.arena.Challenge)
	r.mux.HandleFunc("GET /api/v1/battles", r.arena.ListBattles)
	r.mux.HandleFunc("GET /api/v1/battles/{id}", r.arena.GetBattle)
	r.mux.HandleFunc("POST /api/v1/battles/{id}/join", r.arena.Join)
	r.mux.HandleFunc("POST /api/v1/battles/{id}/complete", r.arena.CompleteBattle)
	r.mux.HandleFunc("POST /api/v1/battles/{id}/cancel", r.arena.CancelBattle)
	r.mux.HandleFunc("POST /api/v1/battle-rewards/{id}/claim", r.arena.ClaimBattleReward)

	// AI
	r.mux.HandleFunc("POST /api/v1/ai/course-content", r.ai.GenerateCourseContent)
	r.mux.HandleFunc("POST /api/v1/ai/validate", r.ai.ValidateAnswer)
	r.mux.HandleFunc("POST /api/v1/ai/nft-metadata", r.ai.GenerateNFTMetadata)
	r.mux.HandleFunc("POST /api/v1/ai/learning-path", r.ai.GenerateLearningPath)
	r.mux.HandleFunc("POST /api/v1/ai/analyze", r.ai.AnalyzeLearningPattern)
	r.mux.HandleFunc("POST /api/v1/ai/chat", r.ai.Chat)
	r.mux.HandleFunc("POST /api/v1/ai/agents", r.ai.CreateAgent)
	r.mux.HandleFunc("GET /api/v1/ai/agents", r.ai.ListAgents)
	r.mux.HandleFunc("GET /api/v1/ai/agents/{id}", r.ai.GetAgent)
	r.mux.HandleFunc("GET /api/v1/ai/prompts/{id}", r.ai.GetPrompt)
	r.mux.HandleFunc("GET /api/v1/ai/responses/{id}", r.ai.GetResponse)
	r.mux.HandleFunc("GET /api/v1/ai/interactions", r.ai.ListInteractions)
	r.mux.HandleFunc("GET /api/v1/ai/stats", r.ai.Stats)
}

func (r *Router) buildMiddlewareChain(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	handler = middleware.Principal(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)
	handler = middleware.RequestID(handler)

	return handler
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	body := map[string]string{
		"status":  "healthy",
		"backend": r.app.Config.StoreBackend,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode health response", "error", err)
	}
}
