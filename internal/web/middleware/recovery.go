package middleware

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/mcoot/cwlroster/internal/middleware"
)

// Recovery assigns each page request an ID and answers panics with a
// static error page quoting it
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	recovery := middleware.Recovery(logger, panicPage)
	return func(next http.Handler) http.Handler {
		return middleware.RequestID(recovery(next))
	}
}

const panicPageHTML = `<!DOCTYPE html>
<html lang="it">
<head><title>Errore - CWL Roster</title></head>
<body>
<h1>Errore interno</h1>
<p>Qualcosa è andato storto durante la preparazione dei roster. Riprova più tardi.</p>
<p>Codice richiesta: <code>%s</code></p>
<p><a href="/">Torna alla home</a></p>
</body>
</html>`

func panicPage(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, panicPageHTML, html.EscapeString(middleware.GetRequestID(r.Context())))
}
