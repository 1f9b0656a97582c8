package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlayerID uniquely identifies a registration
type PlayerID string

// MaxTownHallLevel is the highest town hall players can pick when registering
const MaxTownHallLevel = 17

// TownHallLevel is the symbolic town hall tier, e.g. "th12"
type TownHallLevel string

// ParseTownHallLevel accepts "th12", "TH12" or "12" and returns the canonical "th12"
func ParseTownHallLevel(s string) (TownHallLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "th")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxTownHallLevel {
		return "", ErrInvalidTownHall
	}
	return TownHallLevel(fmt.Sprintf("th%d", n)), nil
}

// Level returns the numeric tier, or 0 if the value is malformed
func (t TownHallLevel) Level() int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(t), "th"))
	if err != nil {
		return 0
	}
	return n
}

// RegisteredPlayer is a player who signed up for the upcoming CWL.
// Immutable once created; it can only be deleted.
type RegisteredPlayer struct {
	ID           PlayerID      `json:"id"`
	Name         string        `json:"name"`
	TownHall     TownHallLevel `json:"th_level"`
	RegisteredAt time.Time     `json:"registered_at"`
}
