package storage

import (
	"context"

	"github.com/mcoot/cwlroster/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Registration operations
	SaveRegistration(ctx context.Context, player *model.RegisteredPlayer) error
	GetRegistration(ctx context.Context, id model.PlayerID) (*model.RegisteredPlayer, error)
	// ListRegistrations returns players in registration order
	ListRegistrations(ctx context.Context) ([]model.RegisteredPlayer, error)
	DeleteRegistration(ctx context.Context, id model.PlayerID) error
	ClearRegistrations(ctx context.Context) error

	// Clan operations
	SaveClan(ctx context.Context, clan *model.Clan) error
	ListClans(ctx context.Context) ([]model.Clan, error)
	DeleteClan(ctx context.Context, id model.ClanID) error

	// Message operations
	SaveMessage(ctx context.Context, msg *model.CwlMessage) error
	// ListMessages returns the most recent messages first
	ListMessages(ctx context.Context, limit int) ([]model.CwlMessage, error)

	// Clan configuration operations
	GetClanConfiguration(ctx context.Context) (*model.ClanConfiguration, error)
	SaveClanConfiguration(ctx context.Context, cfg *model.ClanConfiguration) error

	// Kind names the backend, e.g. "memory" or "sqlite"
	Kind() string
	Close() error
}
