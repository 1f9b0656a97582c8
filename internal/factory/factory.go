package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/cwlroster/internal/clashapi"
	"github.com/mcoot/cwlroster/internal/config"
	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/dependencies/ids"
	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/export"
	"github.com/mcoot/cwlroster/internal/services/planner"
	"github.com/mcoot/cwlroster/internal/services/registration"
	"github.com/mcoot/cwlroster/internal/storage"
	"github.com/mcoot/cwlroster/internal/storage/memory"
	redisstorage "github.com/mcoot/cwlroster/internal/storage/redis"
	"github.com/mcoot/cwlroster/internal/storage/sqlite"
	"github.com/mcoot/cwlroster/internal/storage/textfile"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeSQLite = config.StorageSQLite
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	RegistrationService *registration.Service
	ClanService         *clan.Service
	Planner             *planner.Service
	Exporter            *export.Exporter
	AuthService         *auth.Service
	ClashClient         *clashapi.Client
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RegistrationsPath is the plain-text registration mirror (optional)
	RegistrationsPath string
	// ClanConfigPath is the JSON copy of the clan configuration (optional)
	ClanConfigPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// ClashConfig holds the Clash of Clans API settings (optional)
	ClashConfig clashapi.Config
}

// ConfigFrom translates the loaded server configuration into factory settings
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = cfg.Storage.RedisURL
	redisCfg.KeyPrefix = cfg.Storage.RedisKeyPrefix
	redisCfg.MaxMessages = cfg.Storage.RedisMaxMessages

	return Config{
		Logger:            logger,
		StorageType:       cfg.Storage.Type,
		SQLitePath:        cfg.SQLitePath(),
		RedisConfig:       &redisCfg,
		RegistrationsPath: cfg.RegistrationsPath(),
		ClanConfigPath:    cfg.ClanConfigPath(),
		AuthConfig: auth.Config{
			Password:        cfg.Admin.Password,
			PasswordHash:    cfg.Admin.PasswordHash,
			SessionDuration: cfg.Admin.SessionDuration,
		},
		ClashConfig: clashapi.Config{
			BaseURL:           cfg.Clash.BaseURL,
			APIKey:            cfg.Clash.APIKey,
			Timeout:           cfg.Clash.Timeout,
			RequestsPerSecond: cfg.Clash.RequestsPerSecond,
		},
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil || cfg.RedisConfig.URL == "" {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	var mirror registration.Mirror
	if cfg.RegistrationsPath != "" {
		mirror = textfile.New(cfg.RegistrationsPath)
	}

	app, err := newWithDependencies(store, mirror, clock.New(), ids.New(), cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("application wired",
		slog.String("storage", store.Kind()),
		slog.Bool("clash_api", app.ClashClient.Configured()),
	)
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	mirror registration.Mirror,
	clk clock.Clock,
	gen ids.Generator,
	cfg Config,
	logger *slog.Logger,
) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	authService, err := auth.New(clk, cfg.AuthConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	return &App{
		Storage:             store,
		Clock:               clk,
		IDs:                 gen,
		RegistrationService: registration.New(store, mirror, clk, gen, logger),
		ClanService:         clan.New(store, clk, gen, cfg.ClanConfigPath, logger),
		Planner:             planner.New(store, clk, gen, logger),
		Exporter:            export.New(clk),
		AuthService:         authService,
		ClashClient:         clashapi.New(cfg.ClashConfig, logger),
	}, nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

// ExpireSessions drops expired admin sessions together with their rosters
func (a *App) ExpireSessions() int {
	expired := a.AuthService.CleanExpiredSessions()
	for _, id := range expired {
		a.Planner.Discard(id)
	}
	return len(expired)
}
