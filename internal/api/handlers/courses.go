package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/course"
)

// CourseHandler handles course catalog and enrollment endpoints.
type CourseHandler struct {
	service *course.Service
}

func NewCourseHandler(service *course.Service) *CourseHandler {
	return &CourseHandler{service: service}
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p course.CreateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, c)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, c)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := course.ListFilter{
		SkillID:       q.Get("skill_id"),
		Difficulty:    q.Get("difficulty"),
		PublishedOnly: q.Get("published") == "true",
	}
	skip, limit := pageParams(r)

	page, err := h.service.List(r.Context(), f, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p course.UpdateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.service.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, c)
}

func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	prog, err := h.service.Enroll(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, prog)
}

// UpdateProgress marks a module of the course complete for the caller.
func (h *CourseHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ModuleID string `json:"module_id"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	prog, err := h.service.UpdateProgress(r.Context(), r.PathValue("id"), body.ModuleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, prog)
}

func (h *CourseHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	prog, err := h.service.GetProgress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, prog)
}
