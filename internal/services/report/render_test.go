package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/cwlroster/internal/model"
)

func players(n int) []model.RegisteredPlayer {
	out := make([]model.RegisteredPlayer, n)
	for i := range out {
		out[i] = model.RegisteredPlayer{
			ID:       model.PlayerID(fmt.Sprintf("p%d", i+1)),
			Name:     fmt.Sprintf("Player%d", i+1),
			TownHall: "th14",
		}
	}
	return out
}

func TestRenderExactFormat(t *testing.T) {
	rosters := []model.ClanRoster{
		{
			Clan: model.ClanDefinition{Name: "Eclipse", Capacity: 2, League: model.LeagueGold},
			Players: []model.RegisteredPlayer{
				{ID: "1", Name: "Ann", TownHall: "th12"},
				{ID: "3", Name: "Cy", TownHall: "th9"},
			},
		},
		{
			Clan: model.ClanDefinition{Name: "Nova", Capacity: 2, League: model.LeagueGold},
			Players: []model.RegisteredPlayer{
				{ID: "2", Name: "Bo", TownHall: "th10"},
			},
		},
	}

	want := "Gold League\n\n" +
		"Eclipse 2 partecipanti\n\n" +
		"1) Ann th12\n" +
		"2) Cy th9\n" +
		"\n---\n\n" +
		"Gold League\n\n" +
		"Nova 2 partecipanti\n\n" +
		"1) Bo th10\n" +
		"\nMancano ancora 1 player\n" +
		"\n---\n\n"

	assert.Equal(t, want, Render(rosters))
}

func TestRenderMissingPlayers(t *testing.T) {
	r := model.ClanRoster{
		Clan:    model.ClanDefinition{Name: "Eclipse", Capacity: 15, League: model.LeagueCrystal},
		Players: players(12),
	}
	assert.Contains(t, RenderRoster(r), "Mancano ancora 3 player")

	r.Players = players(15)
	assert.NotContains(t, RenderRoster(r), "Mancano ancora")
}

func TestRenderOverCapacityListsEveryone(t *testing.T) {
	r := model.ClanRoster{
		Clan:    model.ClanDefinition{Name: "Eclipse", Capacity: 2, League: model.LeagueSilver},
		Players: players(4),
	}
	out := RenderRoster(r)
	assert.Contains(t, out, "4) Player4 th14")
	assert.NotContains(t, out, "Mancano")
}

func TestRenderEmptyRoster(t *testing.T) {
	r := model.ClanRoster{
		Clan: model.ClanDefinition{Name: "Nova", Capacity: 5, League: model.LeagueBronze},
	}
	assert.Equal(t, "Bronze League\n\nNova 5 partecipanti\n\n\nMancano ancora 5 player\n\n---\n\n", RenderRoster(r))
}

func TestRenderNothing(t *testing.T) {
	assert.Empty(t, Render(nil))
}

func TestRenderIsDeterministic(t *testing.T) {
	rosters := []model.ClanRoster{
		{Clan: model.ClanDefinition{Name: "A", Capacity: 3, League: model.LeagueMaster}, Players: players(2)},
		{Clan: model.ClanDefinition{Name: "B", Capacity: 1, League: model.LeagueChampion}, Players: players(1)},
	}
	first := Render(rosters)
	second := Render(rosters)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, strings.Count(first, "\n---\n"))
}
