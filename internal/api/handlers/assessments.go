package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/assessment"
)

// AssessmentHandler handles quiz creation, submission, and results.
type AssessmentHandler struct {
	service *assessment.Service
}

func NewAssessmentHandler(service *assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p assessment.CreateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, a)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, a)
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.List(r.Context(), r.URL.Query().Get("skill_id"), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

// Submit grades the caller's answers against the assessment.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answers   []uint64 `json:"answers"`
		TimeTaken uint64   `json:"time_taken"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), r.PathValue("id"), body.Answers, body.TimeTaken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, res)
}

func (h *AssessmentHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListResults(r.Context(), r.URL.Query().Get("assessment_id"), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}
