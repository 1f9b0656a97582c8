package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/cwlroster/internal/api/apierr"
	"github.com/mcoot/cwlroster/internal/middleware"
)

// Recovery assigns each API request an ID and answers panics with the
// JSON internal error envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	recovery := middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
	return func(next http.Handler) http.Handler {
		return middleware.RequestID(recovery(next))
	}
}
