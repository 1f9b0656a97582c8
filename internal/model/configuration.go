package model

import (
	"fmt"
	"strings"
)

// ConfigLeague is the tiered league shown on the public clan profile
type ConfigLeague string

// ConfigLeagues lists the tiered leagues accepted in the clan configuration
var ConfigLeagues = buildConfigLeagues()

func buildConfigLeagues() []ConfigLeague {
	tiers := []string{"Bronze", "Silver", "Gold", "Crystal", "Master", "Champion", "Titan"}
	leagues := make([]ConfigLeague, 0, len(tiers)*3+1)
	for _, tier := range tiers {
		for _, division := range []string{"I", "II", "III"} {
			leagues = append(leagues, ConfigLeague(fmt.Sprintf("%s League %s", tier, division)))
		}
	}
	return append(leagues, "Legend League")
}

// Valid reports whether l is one of the accepted tiered leagues
func (l ConfigLeague) Valid() bool {
	for _, known := range ConfigLeagues {
		if l == known {
			return true
		}
	}
	return false
}

// ClanConfiguration is the public description of the clan
type ClanConfiguration struct {
	ClanName        string       `json:"clanName" yaml:"clan_name"`
	ClanDescription string       `json:"clanDescription" yaml:"clan_description"`
	League          ConfigLeague `json:"league" yaml:"league"`
	ActiveMembers   int          `json:"activeMembers" yaml:"active_members"`
	MaxMembers      int          `json:"maxMembers" yaml:"max_members"`
	WinRate         int          `json:"winRate" yaml:"win_rate"`
	Requirements    string       `json:"requirements" yaml:"requirements"`
	NextCwlInfo     string       `json:"nextCwlInfo" yaml:"next_cwl_info"`
}

// DefaultClanConfiguration is used until the administrator saves one
func DefaultClanConfiguration() ClanConfiguration {
	return ClanConfiguration{
		ClanName:        "Eclipse Clan",
		ClanDescription: "Clan competitivo italiano specializzato in Clan War League. Cerchiamo sempre nuovi membri attivi e determinati a migliorare.",
		League:          "Crystal League I",
		ActiveMembers:   45,
		MaxMembers:      50,
		WinRate:         85,
		Requirements:    "Town Hall 12+ preferito, attacco consistente nelle war",
		NextCwlInfo:     "Registrazioni aperte fino al 28 del mese",
	}
}

// Validate checks every field is within its allowed range
func (c ClanConfiguration) Validate() error {
	var problems []string
	required := map[string]string{
		"clanName":        c.ClanName,
		"clanDescription": c.ClanDescription,
		"requirements":    c.Requirements,
		"nextCwlInfo":     c.NextCwlInfo,
	}
	for _, field := range []string{"clanName", "clanDescription", "requirements", "nextCwlInfo"} {
		if strings.TrimSpace(required[field]) == "" {
			problems = append(problems, field+" is required")
		}
	}
	if !c.League.Valid() {
		problems = append(problems, "league is not valid")
	}
	if c.ActiveMembers < 1 || c.ActiveMembers > 50 {
		problems = append(problems, "activeMembers must be 1-50")
	}
	if c.MaxMembers < 1 || c.MaxMembers > 50 {
		problems = append(problems, "maxMembers must be 1-50")
	}
	if c.WinRate < 0 || c.WinRate > 100 {
		problems = append(problems, "winRate must be 0-100")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, ", "))
	}
	return nil
}
