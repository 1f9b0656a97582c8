package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwlroster/internal/api/request"
	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/clashapi"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/clan"
)

// ClanHandler handles saved clans, the clan configuration and the clan member lookup
type ClanHandler struct {
	service *clan.Service
	clash   *clashapi.Client
}

// NewClanHandler creates a new clan handler
func NewClanHandler(service *clan.Service, clash *clashapi.Client) *ClanHandler {
	return &ClanHandler{service: service, clash: clash}
}

// List handles GET /api/clans
func (h *ClanHandler) List(w http.ResponseWriter, r *http.Request) {
	clans, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ClansFromModel(clans))
}

// Create handles POST /api/clans
func (h *ClanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClanRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.service.Add(r.Context(), req.Name, req.Participants, model.League(req.League))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ClanFromModel(*c))
}

// Delete handles DELETE /api/clans/{id}
func (h *ClanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ClanID(mux.Vars(r)["id"])

	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetConfiguration handles GET /api/clan-configuration
func (h *ClanHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfiguration(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cfg)
}

// SaveConfiguration handles POST /api/clan-configuration
func (h *ClanHandler) SaveConfiguration(w http.ResponseWriter, r *http.Request) {
	var req model.ClanConfiguration
	if !decode(w, r, &req) {
		return
	}

	cfg, err := h.service.SaveConfiguration(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cfg)
}

// ClashPlayers handles GET /api/clash-players/{tag}
func (h *ClanHandler) ClashPlayers(w http.ResponseWriter, r *http.Request) {
	members, err := h.clash.ClanMembers(r.Context(), mux.Vars(r)["tag"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, members)
}
