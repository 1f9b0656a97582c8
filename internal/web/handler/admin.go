package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/export"
	"github.com/mcoot/cwlroster/internal/services/planner"
	"github.com/mcoot/cwlroster/internal/services/registration"
	"github.com/mcoot/cwlroster/internal/web/middleware"
	"github.com/mcoot/cwlroster/internal/web/views"
)

const adminPath = "/admin"

// AdminHandler handles the roster building pages
type AdminHandler struct {
	registrations *registration.Service
	clans         *clan.Service
	planner       *planner.Service
	exporter      *export.Exporter
	logger        *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	registrations *registration.Service,
	clans *clan.Service,
	planner *planner.Service,
	exporter *export.Exporter,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		registrations: registrations,
		clans:         clans,
		planner:       planner,
		exporter:      exporter,
		logger:        logger,
	}
}

// Dashboard renders the admin page
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	data := views.AdminData{PageData: pageData(r, "Admin")}

	var err error
	if data.Players, err = h.registrations.List(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Clans, err = h.clans.List(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	rosters, err := h.planner.Rosters(session.ID)
	switch {
	case err == nil:
		data.Rosters = rosters
	case !errors.Is(err, model.ErrSessionNotFound):
		h.fail(w, r, err)
		return
	}

	messages, err := h.planner.Messages(r.Context(), 1)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(messages) > 0 {
		data.Message = &messages[0]
	}

	render(w, r, http.StatusOK, views.Admin(data))
}

// DeleteRegistration removes one registration
func (h *AdminHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	if err := h.registrations.Delete(r.Context(), id); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Iscrizione eliminata")
}

// ClearRegistrations removes every registration
func (h *AdminHandler) ClearRegistrations(w http.ResponseWriter, r *http.Request) {
	if err := h.registrations.Clear(r.Context()); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Iscrizioni cancellate")
}

// AddClan saves a clan definition
func (h *AdminHandler) AddClan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidInput)
		return
	}

	capacity, err := strconv.Atoi(r.FormValue("participants"))
	if err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidClan)
		return
	}

	c, err := h.clans.Add(r.Context(), r.FormValue("name"), capacity, model.League(r.FormValue("league")))
	if err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Clan aggiunto: "+c.Name)
}

// DeleteClan removes a saved clan definition
func (h *AdminHandler) DeleteClan(w http.ResponseWriter, r *http.Request) {
	if err := h.clans.Delete(r.Context(), model.ClanID(mux.Vars(r)["id"])); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Clan eliminato")
}

// StartRoster starts a roster session from the saved clans
func (h *AdminHandler) StartRoster(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	defs, err := h.clans.Definitions(r.Context())
	if err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}

	if _, err := h.planner.Start(r.Context(), session.ID, defs); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Roster creato")
}

// MovePlayer moves a player to another clan
func (h *AdminHandler) MovePlayer(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidInput)
		return
	}

	_, err := h.planner.Move(session.ID,
		model.PlayerID(r.FormValue("player_id")),
		model.ClanID(r.FormValue("from_clan_id")),
		model.ClanID(r.FormValue("to_clan_id")))
	if err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// ReorderPlayer moves a player one position up or down
func (h *AdminHandler) ReorderPlayer(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidInput)
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidIndex)
		return
	}
	clanID := model.ClanID(r.FormValue("clan_id"))

	switch r.FormValue("direction") {
	case "up":
		_, err = h.planner.MoveUp(session.ID, clanID, index)
	case "down":
		_, err = h.planner.MoveDown(session.ID, clanID, index)
	default:
		err = model.ErrInvalidInput
	}
	if err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// GenerateMessage renders and saves the roster message
func (h *AdminHandler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if _, err := h.planner.Generate(r.Context(), session.ID); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}
	redirectWithSuccess(w, r, adminPath, "Messaggio generato")
}

// DiscardRoster drops the current roster session
func (h *AdminHandler) DiscardRoster(w http.ResponseWriter, r *http.Request) {
	h.planner.Discard(middleware.GetSession(r.Context()).ID)
	redirectWithSuccess(w, r, adminPath, "Roster annullato")
}

// ExportPDF downloads the submitted message as a PDF
func (h *AdminHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, adminPath, model.ErrInvalidInput)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.PDF(&buf, r.FormValue("message")); err != nil {
		redirectWithError(w, r, adminPath, err)
		return
	}

	response.Attachment(w, "application/pdf", export.Filename, buf.Bytes())
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("admin page failed", slog.String("error", err.Error()))
	render(w, r, http.StatusInternalServerError, views.ErrorPage(pageData(r, "Errore"), "Errore interno"))
}
