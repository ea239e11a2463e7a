package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/skill"
)

// SkillHandler handles the skill catalog and per-user progress endpoints.
type SkillHandler struct {
	service *skill.Service
}

func NewSkillHandler(service *skill.Service) *SkillHandler {
	return &SkillHandler{service: service}
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p skill.CreateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, s)
}

func (h *SkillHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, s)
}

func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := skill.ListFilter{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
	}
	skip, limit := pageParams(r)

	page, err := h.service.List(r.Context(), f, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

// UpdateProgress credits XP toward the skill for the caller.
func (h *SkillHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		XPGained uint64 `json:"xp_gained"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	us, err := h.service.UpdateProgress(r.Context(), r.PathValue("id"), body.XPGained)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, us)
}

func (h *SkillHandler) GetUserSkill(w http.ResponseWriter, r *http.Request) {
	us, err := h.service.GetUserSkill(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, us)
}

func (h *SkillHandler) ListUserSkills(w http.ResponseWriter, r *http.Request) {
	mastery := domain.MasteryLevel(r.URL.Query().Get("mastery"))
	skip, limit := pageParams(r)

	page, err := h.service.ListUserSkills(r.Context(), mastery, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}
