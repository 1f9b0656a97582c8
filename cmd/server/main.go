package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/cwlroster/internal/api"
	"github.com/mcoot/cwlroster/internal/config"
	"github.com/mcoot/cwlroster/internal/factory"
	"github.com/mcoot/cwlroster/internal/web"
)

// sessionSweepInterval is how often expired admin sessions and their rosters are dropped
const sessionSweepInterval = 5 * time.Minute

func main() {
	cfg, err := config.FromEnvironment()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		slog.Error("invalid log level", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create application factory
	app, err := factory.New(ctx, factory.ConfigFrom(cfg, logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	metrics := api.NewMetrics(app.Planner.SessionCount)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		StorageKind:         app.Storage.Kind(),
		AuthService:         app.AuthService,
		RegistrationService: app.RegistrationService,
		ClanService:         app.ClanService,
		Planner:             app.Planner,
		Exporter:            app.Exporter,
		ClashClient:         app.ClashClient,
		Metrics:             metrics,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		RegistrationService: app.RegistrationService,
		ClanService:         app.ClanService,
		Planner:             app.Planner,
		Exporter:            app.Exporter,
		StaticDir:           findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, cfg.Server, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := app.ExpireSessions(); n > 0 {
					logger.Info("expired admin sessions", slog.Int("count", n))
				}
			}
		}
	})

	return g.Wait()
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
