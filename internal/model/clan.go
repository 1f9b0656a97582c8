package model

import (
	"strings"
	"time"
)

// ClanID identifies a clan definition independently of its position
type ClanID string

// League is the CWL bracket a clan is placed in for roster building
type League string

const (
	LeagueBronze   League = "Bronze League"
	LeagueSilver   League = "Silver League"
	LeagueGold     League = "Gold League"
	LeagueCrystal  League = "Crystal League"
	LeagueMaster   League = "Master League"
	LeagueChampion League = "Champion League"
)

// Leagues lists the accepted roster leagues, lowest first
var Leagues = []League{
	LeagueBronze,
	LeagueSilver,
	LeagueGold,
	LeagueCrystal,
	LeagueMaster,
	LeagueChampion,
}

// Valid reports whether l is one of the accepted leagues
func (l League) Valid() bool {
	for _, known := range Leagues {
		if l == known {
			return true
		}
	}
	return false
}

// ClanDefinition describes one clan taking part in the CWL
type ClanDefinition struct {
	ID       ClanID `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"participants"`
	League   League `json:"league"`
}

// Validate checks the definition can be used to build a roster
func (d ClanDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" || d.Capacity < 1 {
		return ErrInvalidClan
	}
	if !d.League.Valid() {
		return ErrInvalidLeague
	}
	return nil
}

// Clan is a clan definition saved by the administrator
type Clan struct {
	ClanDefinition
	CreatedAt time.Time `json:"created_at"`
}

// ClanRoster is the ordered list of players assigned to a clan.
// Players may exceed Clan.Capacity; shortfalls are reported when rendering.
type ClanRoster struct {
	Clan    ClanDefinition     `json:"clan"`
	Players []RegisteredPlayer `json:"players"`
}

// Missing returns how many players the roster still needs
func (r ClanRoster) Missing() int {
	return max(0, r.Clan.Capacity-len(r.Players))
}

// IndexOf returns the position of the player in the roster, or -1
func (r ClanRoster) IndexOf(id PlayerID) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SessionID identifies an administrator's roster-building session
type SessionID string
