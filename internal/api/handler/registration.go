package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwlroster/internal/api/request"
	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/registration"
)

// RegistrationHandler handles player sign-up endpoints
type RegistrationHandler struct {
	service *registration.Service
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(service *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// List handles GET /api/player-registrations
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Create handles POST /api/player-registrations
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if !decode(w, r, &req) {
		return
	}

	player, err := h.service.Register(r.Context(), req.PlayerName, req.THLevel)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(*player))
}

// Get handles GET /api/player-registrations/{id}
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(*player))
}

// Delete handles DELETE /api/player-registrations/{id}
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Clear handles DELETE /api/player-registrations
func (h *RegistrationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// File handles GET /api/registrations-file
func (h *RegistrationHandler) File(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RegistrationsFileFromStatus(status))
}
