package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/stake"
)

// StakeHandler handles commitment stake endpoints.
type StakeHandler struct {
	service *stake.Service
}

func NewStakeHandler(service *stake.Service) *StakeHandler {
	return &StakeHandler{service: service}
}

func (h *StakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p stake.CreateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	st, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, st)
}

func (h *StakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, st)
}

func (h *StakeHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.List(r.Context(), r.URL.Query().Get("status"), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *StakeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p stake.UpdateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	st, err := h.service.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, st)
}

func (h *StakeHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.CheckIn(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, st)
}

func (h *StakeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, st)
}

func (h *StakeHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Withdraw(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, st)
}
