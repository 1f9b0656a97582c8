package roster

import (
	"fmt"

	"github.com/mcoot/cwlroster/internal/model"
)

// AutoAssign distributes players over clans by position: the player at index
// i goes to clans[i mod len(clans)]. Capacity is ignored on purpose, so a
// roster can end up over or under its capacity.
func AutoAssign(players []model.RegisteredPlayer, clans []model.ClanDefinition) ([]model.ClanRoster, error) {
	if len(clans) == 0 {
		return nil, model.ErrNoClans
	}

	seen := make(map[model.PlayerID]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: player %s listed twice", model.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
	}

	rosters := make([]model.ClanRoster, len(clans))
	for i, c := range clans {
		rosters[i] = model.ClanRoster{Clan: c, Players: []model.RegisteredPlayer{}}
	}
	for i, p := range players {
		r := &rosters[i%len(clans)]
		r.Players = append(r.Players, p)
	}
	return rosters, nil
}

// Preview gives every valid clan the first Capacity registrations, without
// splitting them. Invalid definitions are skipped.
func Preview(players []model.RegisteredPlayer, clans []model.ClanDefinition) []model.ClanRoster {
	rosters := make([]model.ClanRoster, 0, len(clans))
	for _, c := range clans {
		if c.Validate() != nil {
			continue
		}
		n := min(c.Capacity, len(players))
		assigned := make([]model.RegisteredPlayer, n)
		copy(assigned, players[:n])
		rosters = append(rosters, model.ClanRoster{Clan: c, Players: assigned})
	}
	return rosters
}
