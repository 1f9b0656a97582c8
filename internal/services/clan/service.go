package clan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/dependencies/ids"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

// DefaultConfigFilename is where the clan configuration is copied inside the data directory
const DefaultConfigFilename = "clan-config.json"

// Service manages the saved clan definitions and the public clan configuration
type Service struct {
	storage    storage.Storage
	clock      clock.Clock
	ids        ids.Generator
	configPath string
	logger     *slog.Logger
}

// New creates a new clan Service. configPath may be empty to skip the JSON copy.
func New(
	storage storage.Storage,
	clock clock.Clock,
	ids ids.Generator,
	configPath string,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:    storage,
		clock:      clock,
		ids:        ids,
		configPath: configPath,
		logger:     logger,
	}
}

// Add saves a new clan definition
func (s *Service) Add(ctx context.Context, name string, capacity int, league model.League) (*model.Clan, error) {
	def := model.ClanDefinition{
		ID:       model.ClanID(s.ids.NewID()),
		Name:     strings.TrimSpace(name),
		Capacity: capacity,
		League:   league,
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	clan := &model.Clan{ClanDefinition: def, CreatedAt: s.clock.Now()}
	if err := s.storage.SaveClan(ctx, clan); err != nil {
		return nil, err
	}

	s.logger.Info("clan added",
		slog.String("clan_id", string(clan.ID)),
		slog.String("name", clan.Name),
		slog.Int("participants", clan.Capacity),
		slog.String("league", string(clan.League)),
	)
	return clan, nil
}

// List returns the saved clans in creation order
func (s *Service) List(ctx context.Context) ([]model.Clan, error) {
	return s.storage.ListClans(ctx)
}

// Definitions returns the saved clans as roster definitions
func (s *Service) Definitions(ctx context.Context) ([]model.ClanDefinition, error) {
	clans, err := s.storage.ListClans(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]model.ClanDefinition, len(clans))
	for i, c := range clans {
		defs[i] = c.ClanDefinition
	}
	return defs, nil
}

// Delete removes a saved clan
func (s *Service) Delete(ctx context.Context, id model.ClanID) error {
	if err := s.storage.DeleteClan(ctx, id); err != nil {
		return err
	}
	s.logger.Info("clan deleted", slog.String("clan_id", string(id)))
	return nil
}

// GetConfiguration returns the clan configuration. On first use it is seeded from the
// JSON file when one exists, otherwise from the defaults, and saved.
func (s *Service) GetConfiguration(ctx context.Context) (*model.ClanConfiguration, error) {
	cfg, err := s.storage.GetClanConfiguration(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, model.ErrConfigurationNotFound) {
		return nil, err
	}

	seed := s.loadConfigFile()
	if err := s.persistConfiguration(ctx, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// SaveConfiguration validates and stores a new clan configuration
func (s *Service) SaveConfiguration(ctx context.Context, cfg model.ClanConfiguration) (*model.ClanConfiguration, error) {
	cfg.ClanName = strings.TrimSpace(cfg.ClanName)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.persistConfiguration(ctx, &cfg); err != nil {
		return nil, err
	}
	s.logger.Info("clan configuration saved", slog.String("clan_name", cfg.ClanName))
	return &cfg, nil
}

func (s *Service) persistConfiguration(ctx context.Context, cfg *model.ClanConfiguration) error {
	if err := s.storage.SaveClanConfiguration(ctx, cfg); err != nil {
		return err
	}
	if s.configPath == "" {
		return nil
	}
	if err := writeConfigFile(s.configPath, cfg); err != nil {
		s.logger.Warn("failed to write clan configuration file",
			slog.String("path", s.configPath),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// loadConfigFile returns the configuration in the JSON file, falling back to
// the defaults when it is missing or invalid
func (s *Service) loadConfigFile() model.ClanConfiguration {
	if s.configPath == "" {
		return model.DefaultClanConfiguration()
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read clan configuration file", slog.String("error", err.Error()))
		}
		return model.DefaultClanConfiguration()
	}

	cfg := model.DefaultClanConfiguration()
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("ignoring malformed clan configuration file", slog.String("error", err.Error()))
		return model.DefaultClanConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("ignoring invalid clan configuration file", slog.String("error", err.Error()))
		return model.DefaultClanConfiguration()
	}
	return cfg
}

func writeConfigFile(path string, cfg *model.ClanConfiguration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
