package handler

import (
	"net/http"
	"time"

	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/services/planner"
	"github.com/mcoot/cwlroster/internal/web/middleware"
	"github.com/mcoot/cwlroster/internal/web/views"
)

// AuthHandler handles the admin login page and actions
type AuthHandler struct {
	authService *auth.Service
	planner     *planner.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, planner *planner.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		planner:     planner,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, views.Login(views.LoginData{PageData: pageData(r, "Accesso")}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Dati non validi")
		return
	}

	session, err := h.authService.Login(r.FormValue("password"))
	if err != nil {
		h.renderLoginError(w, r, "Password errata")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectWithSuccess(w, r, "/admin", "Accesso effettuato")
}

// Logout ends the admin session and drops its roster
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		if session := h.authService.Logout(cookie.Value); session != nil {
			h.planner.Discard(session.ID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "Sei uscito")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	render(w, r, http.StatusUnauthorized, views.Login(views.LoginData{
		PageData: pageData(r, "Accesso"),
		Error:    errorMsg,
	}))
}
