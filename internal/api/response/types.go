package response

import (
	"time"

	"github.com/mcoot/cwlroster/internal/clashapi"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/registration"
)

// Health is the response of the health check
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Player represents a registration in API responses
type Player struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"player_name"`
	THLevel      string    `json:"th_level"`
	RegisteredAt time.Time `json:"registered_at"`
}

// PlayerFromModel converts a model.RegisteredPlayer
func PlayerFromModel(p model.RegisteredPlayer) Player {
	return Player{
		ID:           string(p.ID),
		PlayerName:   p.Name,
		THLevel:      string(p.TownHall),
		RegisteredAt: p.RegisteredAt,
	}
}

// PlayersFromModel converts a list of registrations
func PlayersFromModel(players []model.RegisteredPlayer) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// RegistrationsFile describes the registration list and its text mirror
type RegistrationsFile struct {
	Count   int    `json:"count"`
	IsEmpty bool   `json:"isEmpty"`
	Storage string `json:"storage"`
	Content string `json:"content"`
}

// RegistrationsFileFromStatus converts a registration.Status
func RegistrationsFileFromStatus(s *registration.Status) RegistrationsFile {
	return RegistrationsFile{
		Count:   s.Count,
		IsEmpty: s.IsEmpty,
		Storage: s.Storage,
		Content: s.Content,
	}
}

// Clan represents a clan definition
type Clan struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Participants int        `json:"participants"`
	League       string     `json:"league"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// ClanFromDefinition converts a model.ClanDefinition
func ClanFromDefinition(d model.ClanDefinition) Clan {
	return Clan{
		ID:           string(d.ID),
		Name:         d.Name,
		Participants: d.Capacity,
		League:       string(d.League),
	}
}

// ClanFromModel converts a saved model.Clan
func ClanFromModel(c model.Clan) Clan {
	out := ClanFromDefinition(c.ClanDefinition)
	createdAt := c.CreatedAt
	out.CreatedAt = &createdAt
	return out
}

// ClansFromModel converts a list of saved clans
func ClansFromModel(clans []model.Clan) []Clan {
	out := make([]Clan, len(clans))
	for i, c := range clans {
		out[i] = ClanFromModel(c)
	}
	return out
}

// ClanRoster is one clan with its assigned players
type ClanRoster struct {
	Clan    Clan     `json:"clan"`
	Players []Player `json:"players"`
	Missing int      `json:"missing"`
}

// Roster is the state of a roster session
type Roster struct {
	Clans []ClanRoster `json:"clans"`
}

// RosterFromModel converts the rosters of a session
func RosterFromModel(rosters []model.ClanRoster) Roster {
	clans := make([]ClanRoster, len(rosters))
	for i, r := range rosters {
		clans[i] = ClanRoster{
			Clan:    ClanFromDefinition(r.Clan),
			Players: PlayersFromModel(r.Players),
			Missing: r.Missing(),
		}
	}
	return Roster{Clans: clans}
}

// Message represents a saved roster message
type Message struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageFromModel converts a model.CwlMessage
func MessageFromModel(m model.CwlMessage) Message {
	return Message{
		ID:        string(m.ID),
		Message:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// MessagesFromModel converts a list of messages
func MessagesFromModel(messages []model.CwlMessage) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = MessageFromModel(m)
	}
	return out
}

// ClashPlayer is a clan member fetched from the Clash of Clans API
type ClashPlayer = clashapi.Member
