package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/mcoot/cwlroster/internal/api/middleware"
	"github.com/mcoot/cwlroster/internal/api/request"
	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/export"
	"github.com/mcoot/cwlroster/internal/services/planner"
)

// RosterHandler handles roster building, messages and the PDF export
type RosterHandler struct {
	planner  *planner.Service
	clans    *clan.Service
	exporter *export.Exporter
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(planner *planner.Service, clans *clan.Service, exporter *export.Exporter) *RosterHandler {
	return &RosterHandler{
		planner:  planner,
		clans:    clans,
		exporter: exporter,
	}
}

func definitions(clans []request.Clan) []model.ClanDefinition {
	defs := make([]model.ClanDefinition, len(clans))
	for i, c := range clans {
		defs[i] = model.ClanDefinition{
			ID:       model.ClanID(c.ID),
			Name:     c.Name,
			Capacity: c.Participants,
			League:   model.League(c.League),
		}
	}
	return defs
}

// Start handles POST /api/roster
func (h *RosterHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.StartRosterRequest
	if !decode(w, r, &req) {
		return
	}

	defs := definitions(req.Clans)
	if len(defs) == 0 {
		saved, err := h.clans.Definitions(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		defs = saved
	}

	rosters, err := h.planner.Start(r.Context(), session.ID, defs)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.RosterFromModel(rosters))
}

// Get handles GET /api/roster
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	rosters, err := h.planner.Rosters(session.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromModel(rosters))
}

// Discard handles DELETE /api/roster
func (h *RosterHandler) Discard(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.planner.Discard(session.ID)
	response.NoContent(w)
}

// Move handles POST /api/roster/move
func (h *RosterHandler) Move(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.MovePlayerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PlayerID == "" || req.FromClanID == "" || req.ToClanID == "" {
		writeInvalid(w, "player_id, from_clan_id and to_clan_id are required")
		return
	}

	rosters, err := h.planner.Move(session.ID,
		model.PlayerID(req.PlayerID), model.ClanID(req.FromClanID), model.ClanID(req.ToClanID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromModel(rosters))
}

// Reorder handles POST /api/roster/reorder
func (h *RosterHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.ReorderRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ClanID == "" {
		writeInvalid(w, "clan_id is required")
		return
	}

	clanID := model.ClanID(req.ClanID)
	var (
		rosters []model.ClanRoster
		err     error
	)
	switch {
	case req.ToIndex != nil:
		rosters, err = h.planner.Reorder(session.ID, clanID, req.FromIndex, *req.ToIndex)
	case req.Direction == "up":
		rosters, err = h.planner.MoveUp(session.ID, clanID, req.FromIndex)
	case req.Direction == "down":
		rosters, err = h.planner.MoveDown(session.ID, clanID, req.FromIndex)
	default:
		writeInvalid(w, `to_index or direction ("up" or "down") is required`)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromModel(rosters))
}

// Message handles POST /api/roster/message
func (h *RosterHandler) Message(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	msg, err := h.planner.Generate(r.Context(), session.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MessageFromModel(*msg))
}

// GenerateMessage handles POST /api/generate-message, building a message
// without a session from the first registrations of each clan
func (h *RosterHandler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateMessageRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.planner.Preview(r.Context(), definitions(req.Clans))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MessageFromModel(*msg))
}

// ListMessages handles GET /api/messages?limit=N
func (h *RosterHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeInvalid(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	messages, err := h.planner.Messages(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MessagesFromModel(messages))
}

// SaveMessage handles POST /api/messages
func (h *RosterHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	var req request.SaveMessageRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.planner.SaveMessage(r.Context(), req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MessageFromModel(*msg))
}

// ExportPDF handles POST /api/export-pdf
func (h *RosterHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var req request.ExportPDFRequest
	if !decode(w, r, &req) {
		return
	}

	// Render fully before writing so failures still produce a JSON error
	var buf bytes.Buffer
	if err := h.exporter.PDF(&buf, req.Message); err != nil {
		WriteError(w, err)
		return
	}

	response.Attachment(w, "application/pdf", export.Filename, buf.Bytes())
}
