package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTownHallLevel(t *testing.T) {
	cases := map[string]TownHallLevel{
		"th12":  "th12",
		"TH9":   "th9",
		" 17 ":  "th17",
		"th1":   "th1",
		"Th010": "th10",
	}
	for in, want := range cases {
		got, err := ParseTownHallLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "th0", "th18", "town hall", "th-1"} {
		_, err := ParseTownHallLevel(in)
		assert.ErrorIs(t, err, ErrInvalidTownHall, in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestTownHallLevelNumber(t *testing.T) {
	assert.Equal(t, 12, TownHallLevel("th12").Level())
	assert.Equal(t, 0, TownHallLevel("bogus").Level())
}

func TestLeagueValid(t *testing.T) {
	assert.True(t, LeagueGold.Valid())
	assert.True(t, League("Champion League").Valid())
	assert.False(t, League("Gold League I").Valid())
	assert.False(t, League("").Valid())
}

func TestClanDefinitionValidate(t *testing.T) {
	ok := ClanDefinition{Name: "Eclipse", Capacity: 15, League: LeagueGold}
	assert.NoError(t, ok.Validate())

	noName := ok
	noName.Name = "   "
	assert.ErrorIs(t, noName.Validate(), ErrInvalidClan)

	zero := ok
	zero.Capacity = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidClan)

	badLeague := ok
	badLeague.League = "Wood League"
	assert.ErrorIs(t, badLeague.Validate(), ErrInvalidLeague)
	assert.ErrorIs(t, badLeague.Validate(), ErrInvalidInput)
}

func TestClanRosterHelpers(t *testing.T) {
	r := ClanRoster{
		Clan:    ClanDefinition{Name: "Nova", Capacity: 3, League: LeagueSilver},
		Players: []RegisteredPlayer{{ID: "a"}, {ID: "b"}},
	}
	assert.Equal(t, 1, r.Missing())
	assert.Equal(t, 1, r.IndexOf("b"))
	assert.Equal(t, -1, r.IndexOf("zzz"))

	r.Players = append(r.Players, RegisteredPlayer{ID: "c"}, RegisteredPlayer{ID: "d"})
	assert.Equal(t, 0, r.Missing())
}

func TestConfigLeagues(t *testing.T) {
	assert.Len(t, ConfigLeagues, 22)
	assert.Equal(t, ConfigLeague("Bronze League I"), ConfigLeagues[0])
	assert.Equal(t, ConfigLeague("Legend League"), ConfigLeagues[len(ConfigLeagues)-1])
	assert.True(t, ConfigLeague("Titan League III").Valid())
	assert.False(t, ConfigLeague("Gold League").Valid())
}

func TestClanConfigurationValidate(t *testing.T) {
	cfg := DefaultClanConfiguration()
	require.NoError(t, cfg.Validate())

	cfg.WinRate = 101
	cfg.ClanName = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "clanName is required")
	assert.Contains(t, err.Error(), "winRate must be 0-100")
}

func TestNotFoundErrorsWrapKind(t *testing.T) {
	for _, err := range []error{ErrPlayerNotFound, ErrClanNotFound, ErrSessionNotFound, ErrMessageNotFound} {
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrInvalidInput)
	}
	assert.Equal(t, "player not found", ErrPlayerNotFound.Error())
}
