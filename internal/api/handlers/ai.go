package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/ai"
)

// AIHandler handles the hybrid AI endpoints.
type AIHandler struct {
	service *ai.Service
}

func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{service: service}
}

func (h *AIHandler) GenerateCourseContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Topic      string `json:"topic"`
		Difficulty uint64 `json:"difficulty"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.service.GenerateCourseContent(r.Context(), body.Topic, body.Difficulty)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, out)
}

func (h *AIHandler) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question       string `json:"question"`
		ExpectedAnswer string `json:"expected_answer"`
		Answer         string `json:"answer"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	v, inter, err := h.service.ValidateAnswer(r.Context(), body.Question, body.ExpectedAnswer, body.Answer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{
		"validation":  v,
		"interaction": inter,
	})
}

func (h *AIHandler) GenerateNFTMetadata(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SkillName    string `json:"skill_name"`
		MasteryLevel uint64 `json:"mastery_level"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	meta, inter, err := h.service.GenerateNFTMetadata(r.Context(), body.SkillName, body.MasteryLevel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{
		"metadata":    meta,
		"interaction": inter,
	})
}

func (h *AIHandler) GenerateLearningPath(w http.ResponseWriter, r *http.Request) {
	var p ai.LearningPathParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	path, inter, err := h.service.GenerateLearningPath(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, map[string]any{
		"path":        path,
		"interaction": inter,
	})
}

func (h *AIHandler) AnalyzeLearningPattern(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Performance map[string]any `json:"performance"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.service.AnalyzeLearningPattern(r.Context(), body.Performance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, out)
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
		Context string `json:"context"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.service.Chat(r.Context(), body.Message, body.Context)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, out)
}

func (h *AIHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var p ai.AgentParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	agent, err := h.service.CreateAgent(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, agent)
}

func (h *AIHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := h.service.GetAgent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, agent)
}

func (h *AIHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListAgents(r.Context(), r.URL.Query().Get("type"), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *AIHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPrompt(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, p)
}

func (h *AIHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetResponse(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, resp)
}

// ListInteractions returns the caller's prompt and response history.
func (h *AIHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListInteractions(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *AIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, h.service.Stats())
}
