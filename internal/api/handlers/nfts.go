package handlers

import (
	"net/http"

	"github.com/icplearn/backend/internal/nft"
)

// NFTHandler handles genesis and skill achievement token endpoints.
type NFTHandler struct {
	service *nft.Service
}

func NewNFTHandler(service *nft.Service) *NFTHandler {
	return &NFTHandler{service: service}
}

func (h *NFTHandler) MintGenesis(w http.ResponseWriter, r *http.Request) {
	var p nft.MintGenesisParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.service.MintGenesis(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, n)
}

func (h *NFTHandler) GetGenesis(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.GetGenesis(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, n)
}

func (h *NFTHandler) ListGenesis(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListGenesis(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}

func (h *NFTHandler) MintSkill(w http.ResponseWriter, r *http.Request) {
	var p nft.MintSkillParams
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.service.MintSkill(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, n)
}

func (h *NFTHandler) GetSkill(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.GetSkill(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, n)
}

func (h *NFTHandler) ListSkill(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	page, err := h.service.ListSkill(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, page)
}
