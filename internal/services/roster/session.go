package roster

import (
	"fmt"
	"slices"

	"github.com/mcoot/cwlroster/internal/dependencies/ids"
	"github.com/mcoot/cwlroster/internal/model"
)

// Session owns the clan rosters of one roster-building session.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	ids     ids.Generator
	order   []model.ClanID
	rosters map[model.ClanID]*model.ClanRoster
}

// NewSession creates an empty session. The generator allocates clan IDs for
// definitions that arrive without one.
func NewSession(gen ids.Generator) *Session {
	if gen == nil {
		gen = ids.New()
	}
	return &Session{
		ids:     gen,
		rosters: make(map[model.ClanID]*model.ClanRoster),
	}
}

// DefinePlans replaces the session's clans with the given definitions, each
// starting with an empty roster. Nothing changes if any definition is invalid.
func (s *Session) DefinePlans(defs []model.ClanDefinition) error {
	prepared, err := s.prepare(defs)
	if err != nil {
		return err
	}

	s.order = make([]model.ClanID, len(prepared))
	s.rosters = make(map[model.ClanID]*model.ClanRoster, len(prepared))
	for i, def := range prepared {
		s.order[i] = def.ID
		s.rosters[def.ID] = &model.ClanRoster{Clan: def, Players: []model.RegisteredPlayer{}}
	}
	return nil
}

// AutoAssign distributes the players over the session's clans round robin
// and replaces any existing assignment
func (s *Session) AutoAssign(players []model.RegisteredPlayer) error {
	defs := make([]model.ClanDefinition, len(s.order))
	for i, id := range s.order {
		defs[i] = s.rosters[id].Clan
	}

	assigned, err := AutoAssign(players, defs)
	if err != nil {
		return err
	}

	for i := range assigned {
		r := assigned[i]
		s.rosters[r.Clan.ID] = &r
	}
	return nil
}

// Clans returns the session's clan definitions in order
func (s *Session) Clans() []model.ClanDefinition {
	defs := make([]model.ClanDefinition, len(s.order))
	for i, id := range s.order {
		defs[i] = s.rosters[id].Clan
	}
	return defs
}

// MovePlayer takes a player out of one clan and appends it to another.
// The remaining players of the source clan keep their relative order.
func (s *Session) MovePlayer(playerID model.PlayerID, fromClan, toClan model.ClanID) error {
	from, ok := s.rosters[fromClan]
	if !ok {
		return fmt.Errorf("source %w: %s", model.ErrClanNotFound, fromClan)
	}
	to, ok := s.rosters[toClan]
	if !ok {
		return fmt.Errorf("destination %w: %s", model.ErrClanNotFound, toClan)
	}

	idx := from.IndexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("%w in clan %s: %s", model.ErrPlayerNotFound, from.Clan.Name, playerID)
	}

	player := from.Players[idx]
	from.Players = slices.Delete(from.Players, idx, idx+1)
	to.Players = append(to.Players, player)
	return nil
}

// ReorderPlayer swaps the player at fromIndex with its neighbour at toIndex.
// Moving the first player up or the last player down is a no-op.
func (s *Session) ReorderPlayer(clanID model.ClanID, fromIndex, toIndex int) error {
	r, ok := s.rosters[clanID]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrClanNotFound, clanID)
	}
	if toIndex != fromIndex-1 && toIndex != fromIndex+1 {
		return fmt.Errorf("%w: can only swap adjacent players (%d -> %d)", model.ErrInvalidInput, fromIndex, toIndex)
	}
	if fromIndex < 0 || fromIndex >= len(r.Players) {
		return fmt.Errorf("%w: %d", model.ErrInvalidIndex, fromIndex)
	}
	if toIndex < 0 || toIndex >= len(r.Players) {
		return nil
	}

	r.Players[fromIndex], r.Players[toIndex] = r.Players[toIndex], r.Players[fromIndex]
	return nil
}

// MoveUp moves the player at index one position towards the top
func (s *Session) MoveUp(clanID model.ClanID, index int) error {
	return s.ReorderPlayer(clanID, index, index-1)
}

// MoveDown moves the player at index one position towards the bottom
func (s *Session) MoveDown(clanID model.ClanID, index int) error {
	return s.ReorderPlayer(clanID, index, index+1)
}

// CurrentRosters returns a snapshot of every roster keyed by clan ID
func (s *Session) CurrentRosters() map[model.ClanID]model.ClanRoster {
	out := make(map[model.ClanID]model.ClanRoster, len(s.rosters))
	for id, r := range s.rosters {
		out[id] = copyRoster(*r)
	}
	return out
}

// Rosters returns a snapshot of every roster in clan definition order
func (s *Session) Rosters() []model.ClanRoster {
	out := make([]model.ClanRoster, len(s.order))
	for i, id := range s.order {
		out[i] = copyRoster(*s.rosters[id])
	}
	return out
}

// Roster returns a snapshot of a single clan's roster
func (s *Session) Roster(clanID model.ClanID) (model.ClanRoster, error) {
	r, ok := s.rosters[clanID]
	if !ok {
		return model.ClanRoster{}, fmt.Errorf("%w: %s", model.ErrClanNotFound, clanID)
	}
	return copyRoster(*r), nil
}

// PlayerCount returns the number of players assigned across all clans
func (s *Session) PlayerCount() int {
	n := 0
	for _, r := range s.rosters {
		n += len(r.Players)
	}
	return n
}

// prepare validates the definitions and fills in missing IDs
func (s *Session) prepare(defs []model.ClanDefinition) ([]model.ClanDefinition, error) {
	if len(defs) == 0 {
		return nil, model.ErrNoClans
	}

	prepared := make([]model.ClanDefinition, len(defs))
	seen := make(map[model.ClanID]bool, len(defs))
	for i, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("clan %d: %w", i+1, err)
		}
		if def.ID == "" {
			def.ID = model.ClanID(s.ids.NewID())
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("%w: duplicate clan id %s", model.ErrInvalidInput, def.ID)
		}
		seen[def.ID] = true
		prepared[i] = def
	}
	return prepared, nil
}

func copyRoster(r model.ClanRoster) model.ClanRoster {
	players := make([]model.RegisteredPlayer, len(r.Players))
	copy(players, r.Players)
	return model.ClanRoster{Clan: r.Clan, Players: players}
}
