package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/registration"
	"github.com/mcoot/cwlroster/internal/web/views"
)

// HomeHandler handles the public registration page
type HomeHandler struct {
	registrations *registration.Service
	clans         *clan.Service
	logger        *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(registrations *registration.Service, clans *clan.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		registrations: registrations,
		clans:         clans,
		logger:        logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	status, err := h.registrations.Status(r.Context())
	if err != nil {
		h.logger.Error("failed to load registrations", slog.String("error", err.Error()))
		render(w, r, http.StatusInternalServerError, views.ErrorPage(pageData(r, "Errore"), "Errore interno"))
		return
	}

	cfg, err := h.clans.GetConfiguration(r.Context())
	if err != nil {
		h.logger.Warn("clan configuration unavailable", slog.String("error", err.Error()))
		def := model.DefaultClanConfiguration()
		cfg = &def
	}

	render(w, r, http.StatusOK, views.Home(views.HomeData{
		PageData: pageData(r, "Iscrizioni"),
		Count:    status.Count,
		Clan:     *cfg,
	}))
}

// Register handles the sign-up form
func (h *HomeHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/", model.ErrInvalidInput)
		return
	}

	player, err := h.registrations.Register(r.Context(), r.FormValue("player_name"), r.FormValue("th_level"))
	if err != nil {
		redirectWithError(w, r, "/", err)
		return
	}

	redirectWithSuccess(w, r, "/", "Iscrizione completata: "+player.Name+" "+string(player.TownHall))
}
