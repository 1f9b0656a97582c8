package registration

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/dependencies/ids"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

// Mirror receives a copy of every change to the registration list
type Mirror interface {
	Append(p model.RegisteredPlayer) error
	Rewrite(players []model.RegisteredPlayer) error
	Clear() error
	Read() (string, error)
}

// Status summarises the registration list
type Status struct {
	Count   int
	IsEmpty bool
	Storage string
	Content string
}

// Service handles player sign-ups for the upcoming CWL
type Service struct {
	storage storage.Storage
	mirror  Mirror
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a new registration Service. A nil mirror disables the text copy.
func New(
	storage storage.Storage,
	mirror Mirror,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		mirror:  mirror,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Register signs a player up. Names are trimmed; the same name may register more than once.
func (s *Service) Register(ctx context.Context, name, townHall string) (*model.RegisteredPlayer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidPlayerName
	}
	th, err := model.ParseTownHallLevel(townHall)
	if err != nil {
		return nil, err
	}

	player := &model.RegisteredPlayer{
		ID:           model.PlayerID(s.ids.NewID()),
		Name:         name,
		TownHall:     th,
		RegisteredAt: s.clock.Now(),
	}
	if err := s.storage.SaveRegistration(ctx, player); err != nil {
		return nil, err
	}

	if s.mirror != nil {
		if err := s.mirror.Append(*player); err != nil {
			// The database is the source of truth; the mirror is rebuilt on the next delete
			s.logger.Warn("failed to append registration to mirror",
				slog.String("player_id", string(player.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
		slog.String("th_level", string(player.TownHall)),
	)
	return player, nil
}

// List returns every registration in sign-up order
func (s *Service) List(ctx context.Context) ([]model.RegisteredPlayer, error) {
	return s.storage.ListRegistrations(ctx)
}

// Get returns a single registration
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.RegisteredPlayer, error) {
	return s.storage.GetRegistration(ctx, id)
}

// Delete removes a registration and rewrites the mirror from what remains
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeleteRegistration(ctx, id); err != nil {
		return err
	}
	s.logger.Info("registration deleted", slog.String("player_id", string(id)))

	if s.mirror == nil {
		return nil
	}
	remaining, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return err
	}
	return s.mirror.Rewrite(remaining)
}

// Clear removes every registration and empties the mirror
func (s *Service) Clear(ctx context.Context) error {
	if err := s.storage.ClearRegistrations(ctx); err != nil {
		return err
	}
	s.logger.Info("registrations cleared")

	if s.mirror == nil {
		return nil
	}
	return s.mirror.Clear()
}

// Status reports the size of the list and the mirror content
func (s *Service) Status(ctx context.Context) (*Status, error) {
	players, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Count:   len(players),
		IsEmpty: len(players) == 0,
		Storage: s.storage.Kind(),
	}
	if s.mirror != nil {
		content, err := s.mirror.Read()
		if err != nil {
			return nil, err
		}
		status.Content = content
	}
	return status, nil
}
