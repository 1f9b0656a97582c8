package handler

import (
	"net/http"

	"github.com/mcoot/cwlroster/internal/api/middleware"
	"github.com/mcoot/cwlroster/internal/api/request"
	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/planner"
)

// AuthHandler handles the admin login endpoints
type AuthHandler struct {
	authService *auth.Service
	planner     *planner.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, planner *planner.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		planner:     planner,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeInvalid(w, "password is required")
		return
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/logout. The session's roster is discarded.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.Logout(session.Token)
	h.planner.Discard(session.ID)
	response.NoContent(w)
}
