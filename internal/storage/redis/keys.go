package redis

import "github.com/mcoot/cwlroster/internal/model"

// keys builds the Redis key layout under a prefix
type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return keys{prefix: prefix}
}

// registration is the JSON value of one RegisteredPlayer
func (k keys) registration(id model.PlayerID) string {
	return k.prefix + ":registration:" + string(id)
}

// registrations is the LIST of registration IDs in insertion order
func (k keys) registrations() string {
	return k.prefix + ":idx:registrations"
}

// clan is the JSON value of one Clan
func (k keys) clan(id model.ClanID) string {
	return k.prefix + ":clan:" + string(id)
}

// clans is the LIST of clan IDs in insertion order
func (k keys) clans() string {
	return k.prefix + ":idx:clans"
}

// messages is the LIST of JSON messages, newest first
func (k keys) messages() string {
	return k.prefix + ":messages"
}

func (k keys) clanConfiguration() string {
	return k.prefix + ":clan_configuration"
}
