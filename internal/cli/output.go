package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\nStorage: %s\n", v.Status, v.Storage)
	case AuthResult:
		o.printf("Logged in, session expires %s\n", v.ExpiresAt.Format(time.RFC3339))
	case Player:
		o.printPlayer(0, v)
	case []Player:
		o.printPlayers(v)
	case RegistrationsFile:
		o.printf("Registrations: %d (%s)\n", v.Count, v.Storage)
		if v.Content != "" {
			o.printf("\n%s", v.Content)
		}
	case Clan:
		o.printClan(v)
	case []Clan:
		if len(v) == 0 {
			o.printf("No clans\n")
		}
		for _, c := range v {
			o.printClan(c)
		}
	case Roster:
		o.printRoster(v)
	case Message:
		o.printf("%s", v.Message)
	case []Message:
		for _, m := range v {
			o.printf("[%s] %s\n%s\n", m.CreatedAt.Format(time.RFC3339), m.ID, m.Message)
		}
	case []ClashMember:
		for _, m := range v {
			o.printf("%-20s %-12s TH%-3d %d stars\n", m.Name, m.Tag, m.TownHallLevel, m.WarStars)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// AuthResult response type
type AuthResult struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Player response type (matches API)
type Player struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"player_name"`
	THLevel      string    `json:"th_level"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegistrationsFile response type
type RegistrationsFile struct {
	Count   int    `json:"count"`
	IsEmpty bool   `json:"isEmpty"`
	Storage string `json:"storage"`
	Content string `json:"content"`
}

// Clan response type
type Clan struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Participants int    `json:"participants"`
	League       string `json:"league"`
}

// ClanRoster response type
type ClanRoster struct {
	Clan    Clan     `json:"clan"`
	Players []Player `json:"players"`
	Missing int      `json:"missing"`
}

// Roster response type
type Roster struct {
	Clans []ClanRoster `json:"clans"`
}

// Message response type
type Message struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ClashMember response type
type ClashMember struct {
	Name          string `json:"name"`
	Tag           string `json:"tag"`
	TownHallLevel int    `json:"townHallLevel"`
	WarStars      int    `json:"warStars"`
}

func (o *Output) printPlayer(n int, p Player) {
	if n > 0 {
		o.printf("%3d) ", n)
	}
	o.printf("%s %s (%s)\n", p.PlayerName, p.THLevel, p.ID)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		o.printf("No registrations\n")
		return
	}
	for i, p := range players {
		o.printPlayer(i+1, p)
	}
}

func (o *Output) printClan(c Clan) {
	o.printf("%s: %s, %d participants, %s\n", c.ID, c.Name, c.Participants, c.League)
}

func (o *Output) printRoster(r Roster) {
	for _, c := range r.Clans {
		o.printf("%s [%s] %s\n", c.Clan.Name, c.Clan.ID, c.Clan.League)
		for i, p := range c.Players {
			o.printf("  %d) %s %s (%s)\n", i+1, p.PlayerName, p.THLevel, p.ID)
		}
		if c.Missing > 0 {
			o.printf("  missing %d\n", c.Missing)
		}
	}
}
