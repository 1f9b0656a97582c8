package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/cwlroster/internal/middleware"
)

// Logging logs each request tagged with the api component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
