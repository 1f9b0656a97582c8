package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/clan"
	"github.com/mcoot/cwlroster/internal/services/export"
	"github.com/mcoot/cwlroster/internal/services/planner"
	"github.com/mcoot/cwlroster/internal/services/registration"
	"github.com/mcoot/cwlroster/internal/web/handler"
	"github.com/mcoot/cwlroster/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	RegistrationService *registration.Service
	ClanService         *clan.Service
	Planner             *planner.Service
	Exporter            *export.Exporter
	StaticDir           string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.RegistrationService, cfg.ClanService, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Planner)
	adminHandler := handler.NewAdminHandler(cfg.RegistrationService, cfg.ClanService, cfg.Planner, cfg.Exporter, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for the admin link in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/register", homeHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/admin/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/admin/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/admin/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require an admin session)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("/admin", adminHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/admin/registrations/clear", adminHandler.ClearRegistrations).Methods(http.MethodPost)
	protected.HandleFunc("/admin/registrations/{id}/delete", adminHandler.DeleteRegistration).Methods(http.MethodPost)
	protected.HandleFunc("/admin/clans", adminHandler.AddClan).Methods(http.MethodPost)
	protected.HandleFunc("/admin/clans/{id}/delete", adminHandler.DeleteClan).Methods(http.MethodPost)

	protected.HandleFunc("/admin/roster", adminHandler.StartRoster).Methods(http.MethodPost)
	protected.HandleFunc("/admin/roster/move", adminHandler.MovePlayer).Methods(http.MethodPost)
	protected.HandleFunc("/admin/roster/reorder", adminHandler.ReorderPlayer).Methods(http.MethodPost)
	protected.HandleFunc("/admin/roster/message", adminHandler.GenerateMessage).Methods(http.MethodPost)
	protected.HandleFunc("/admin/roster/discard", adminHandler.DiscardRoster).Methods(http.MethodPost)
	protected.HandleFunc("/admin/export-pdf", adminHandler.ExportPDF).Methods(http.MethodPost)

	return r
}
