package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/arena"
	"github.com/icplearn/backend/internal/domain"
)

// ArenaHandler handles arena, battle, and battle reward endpoints.
type ArenaHandler struct {
	service *arena.Service
}

func NewArenaHandler(service *arena.Service) *ArenaHandler {
	return &ArenaHandler{service: service}
}

func (h *ArenaHandler) CreateArena(w http.ResponseWriter, r *http.Request) {
	var p arena.CreateArenaParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.service.CreateArena(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, a)
}

func (h *ArenaHandler) GetArena(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetArena(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, a)
}

func (h *ArenaHandler) ListArenas(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListArenas(r.Context(), r.URL.Query().Get("category"), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

// Challenge opens a pending battle from the caller against an opponent.
func (h *ArenaHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	var p arena.ChallengeParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.service.Challenge(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, b)
}

func (h *ArenaHandler) GetBattle(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBattle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, b)
}

func (h *ArenaHandler) ListBattles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := arena.ListFilter{
		ArenaID: q.Get("arena_id"),
		Status:  q.Get("status"),
	}
	skip, limit := pageParams(r)

	page, err := h.service.ListBattles(r.Context(), f, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *ArenaHandler) Join(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Join(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, b)
}

// CompleteBattle settles a battle with a winner and mints the pot reward.
func (h *ArenaHandler) CompleteBattle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Winner domain.Principal `json:"winner"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.service.Complete(r.Context(), r.PathValue("id"), body.Winner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, b)
}

func (h *ArenaHandler) CancelBattle(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, b)
}

func (h *ArenaHandler) ClaimBattleReward(w http.ResponseWriter, r *http.Request) {
	br, err := h.service.ClaimBattleReward(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, br)
}
