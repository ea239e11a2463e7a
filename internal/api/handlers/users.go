package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/user"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates the account for the calling identity.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var p user.RegisterParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, u)
}

// Me returns the caller's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, u)
}

// Update applies a partial update to the caller's own record.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p user.UpdateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.service.Update(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, u)
}

// Get returns a user by principal.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetByID(r.Context(), domain.Principal(r.PathValue("id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, u)
}

// List returns registered users, newest first.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}
