package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/reward"
)

// RewardHandler handles Bitcoin reward endpoints.
type RewardHandler struct {
	service *reward.Service
}

func NewRewardHandler(service *reward.Service) *RewardHandler {
	return &RewardHandler{service: service}
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p reward.CreateParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	rw, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, rw)
}

func (h *RewardHandler) Get(w http.ResponseWriter, r *http.Request) {
	rw, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, rw)
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := reward.ListFilter{
		UserID: domain.Principal(q.Get("user_id")),
		Status: q.Get("status"),
	}
	skip, limit := pageParams(r)

	page, err := h.service.List(r.Context(), f, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

// Process marks a pending reward as paid out on-chain.
func (h *RewardHandler) Process(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TransactionHash string `json:"transaction_hash"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	rw, err := h.service.Process(r.Context(), r.PathValue("id"), body.TransactionHash)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, rw)
}

// Claim lets the reward owner claim a pending reward to a wallet.
func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WalletAddress string `json:"wallet_address"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	rw, err := h.service.Claim(r.Context(), r.PathValue("id"), body.WalletAddress)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, rw)
}
