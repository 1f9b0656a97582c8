package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwlroster/internal/api/handler"
	"github.com/mcoot/cwlroster/internal/api/middleware"
	"github.com/mcoot/cwlroster/internal/api/response"
	"github.com/mcoot/cwlroster/internal/clashapi"
	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/export"
	"github.com/mcoot/cwlroster/internal/services/planner"
	"github.com/mcoot/cwlroster/internal/services/registration"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	StorageKind         string
	AuthService         *auth.Service
	RegistrationService *registration.Service
	ClanService         *clan.Service
	Planner             *planner.Service
	Exporter            *export.Exporter
	ClashClient         *clashapi.Client
	// Metrics is optional; when set its middleware wraps every API route
	Metrics *Metrics
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Planner)
	registrationHandler := handler.NewRegistrationHandler(cfg.RegistrationService)
	clanHandler := handler.NewClanHandler(cfg.ClanService, cfg.ClashClient)
	rosterHandler := handler.NewRosterHandler(cfg.Planner, cfg.ClanService, cfg.Exporter)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	if cfg.Metrics != nil {
		api.Use(cfg.Metrics.Middleware)
	}

	// Public routes: health, login and player sign-up
	api.HandleFunc("/health", healthHandler(cfg.StorageKind)).Methods(http.MethodGet)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/player-registrations", registrationHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/player-registrations", registrationHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/clan-configuration", clanHandler.GetConfiguration).Methods(http.MethodGet)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(authMiddleware)
	admin.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	admin.HandleFunc("/player-registrations", registrationHandler.Clear).Methods(http.MethodDelete)
	admin.HandleFunc("/player-registrations/{id}", registrationHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/player-registrations/{id}", registrationHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/registrations-file", registrationHandler.File).Methods(http.MethodGet)

	admin.HandleFunc("/clans", clanHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/clans", clanHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/clans/{id}", clanHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/clan-configuration", clanHandler.SaveConfiguration).Methods(http.MethodPost)
	admin.HandleFunc("/clash-players/{tag}", clanHandler.ClashPlayers).Methods(http.MethodGet)

	admin.HandleFunc("/roster", rosterHandler.Start).Methods(http.MethodPost)
	admin.HandleFunc("/roster", rosterHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/roster", rosterHandler.Discard).Methods(http.MethodDelete)
	admin.HandleFunc("/roster/move", rosterHandler.Move).Methods(http.MethodPost)
	admin.HandleFunc("/roster/reorder", rosterHandler.Reorder).Methods(http.MethodPost)
	admin.HandleFunc("/roster/message", rosterHandler.Message).Methods(http.MethodPost)

	admin.HandleFunc("/generate-message", rosterHandler.GenerateMessage).Methods(http.MethodPost)
	admin.HandleFunc("/messages", rosterHandler.ListMessages).Methods(http.MethodGet)
	admin.HandleFunc("/messages", rosterHandler.SaveMessage).Methods(http.MethodPost)
	admin.HandleFunc("/export-pdf", rosterHandler.ExportPDF).Methods(http.MethodPost)

	return r
}

func healthHandler(storageKind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageKind})
	}
}
