package request

// LoginRequest is the request body for the admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// RegisterPlayerRequest is the request body for signing up for the CWL
type RegisterPlayerRequest struct {
	PlayerName string `json:"player_name"`
	THLevel    string `json:"th_level"`
}

// Clan is a clan definition in request bodies
type Clan struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Participants int    `json:"participants"`
	League       string `json:"league"`
}

// CreateClanRequest is the request body for saving a clan
type CreateClanRequest = Clan

// StartRosterRequest is the request body for starting a roster session.
// When Clans is empty the saved clans are used.
type StartRosterRequest struct {
	Clans []Clan `json:"clans"`
}

// MovePlayerRequest moves a player between clans
type MovePlayerRequest struct {
	PlayerID   string `json:"player_id"`
	FromClanID string `json:"from_clan_id"`
	ToClanID   string `json:"to_clan_id"`
}

// ReorderRequest swaps two adjacent players within a clan.
// Direction "up" or "down" may be given instead of ToIndex.
type ReorderRequest struct {
	ClanID    string `json:"clan_id"`
	FromIndex int    `json:"from_index"`
	ToIndex   *int   `json:"to_index,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// GenerateMessageRequest is the request body for the one-shot message preview
type GenerateMessageRequest struct {
	Clans []Clan `json:"clans"`
}

// SaveMessageRequest stores a hand-edited message
type SaveMessageRequest struct {
	Content string `json:"content"`
}

// ExportPDFRequest is the request body for the PDF export
type ExportPDFRequest struct {
	Message string `json:"message"`
}
