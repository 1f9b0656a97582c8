package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/web/middleware"
	"github.com/mcoot/cwlroster/internal/web/views"
)

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func pageData(r *http.Request, title string) views.PageData {
	return views.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
		Admin: middleware.GetSession(r.Context()) != nil,
	}
}

// redirectWithError flashes a readable version of err and redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	middleware.SetFlash(w, "error", userMessage(err))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, message string) {
	middleware.SetFlash(w, "success", message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidPlayerName):
		return "Inserisci il nome del player"
	case errors.Is(err, model.ErrInvalidTownHall):
		return "Livello municipio non valido"
	case errors.Is(err, model.ErrNoClans):
		return "Aggiungi almeno un clan prima di creare il roster"
	case errors.Is(err, model.ErrInvalidClan):
		return "Il clan deve avere un nome e almeno un partecipante"
	case errors.Is(err, model.ErrInvalidLeague):
		return "Lega non valida"
	case errors.Is(err, model.ErrMessageEmpty):
		return "Il messaggio è vuoto"
	case errors.Is(err, model.ErrSessionNotFound):
		return "Nessun roster in corso"
	case errors.Is(err, model.ErrPlayerNotFound):
		return "Player non trovato"
	case errors.Is(err, model.ErrClanNotFound):
		return "Clan non trovato"
	case errors.Is(err, model.ErrInvalidInput):
		return "Richiesta non valida"
	default:
		return "Si è verificato un errore"
	}
}
