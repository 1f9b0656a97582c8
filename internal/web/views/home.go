package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/cwlroster/internal/model"
)

// HomeData is the public registration page
type HomeData struct {
	PageData
	Count int
	Clan  model.ClanConfiguration
}

// Home renders the sign-up form and the number of registrations so far
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.f("<section id=\"clan\">\n<h1>%s</h1>\n<p>%s</p>\n", data.Clan.ClanName, data.Clan.ClanDescription)
		p.f("<p class=\"league\">%s</p>\n", string(data.Clan.League))
		p.f("<p class=\"requirements\">%s</p>\n<p class=\"next-cwl\">%s</p>\n</section>\n",
			data.Clan.Requirements, data.Clan.NextCwlInfo)

		p.raw("<section id=\"register\">\n<h2>Iscriviti alla CWL</h2>\n")
		p.raw("<form method=\"post\" action=\"/register\">\n")
		p.raw("<label for=\"player_name\">Nome player</label>\n")
		p.raw("<input id=\"player_name\" name=\"player_name\" type=\"text\" required maxlength=\"30\">\n")
		p.raw("<label for=\"th_level\">Municipio</label>\n<select id=\"th_level\" name=\"th_level\">\n")
		for n := model.MaxTownHallLevel; n >= 1; n-- {
			p.f("<option value=\"th%d\">TH%d</option>\n", n, n)
		}
		p.raw("</select>\n<button type=\"submit\">Iscriviti</button>\n</form>\n")
		p.f("<p id=\"count\">Iscritti: <strong>%d</strong></p>\n</section>\n", data.Count)
		return p.err
	})
	return Layout(data.PageData, body)
}

// LoginData is the admin login page
type LoginData struct {
	PageData
	Error string
}

// Login renders the admin password form
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw("<h1>Accesso admin</h1>\n")
		if data.Error != "" {
			p.f("<p class=\"error\">%s</p>\n", data.Error)
		}
		p.raw("<form method=\"post\" action=\"/admin/login\">\n")
		p.raw("<label for=\"password\">Password</label>\n")
		p.raw("<input id=\"password\" name=\"password\" type=\"password\" required>\n")
		p.raw("<button type=\"submit\">Entra</button>\n</form>\n")
		return p.err
	})
	return Layout(data.PageData, body)
}

// ErrorPage renders a plain error page with the given status text
func ErrorPage(data PageData, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p><a href=\"/\">Torna alla home</a></p>\n", templ.EscapeString(message))
		return err
	})
	return Layout(data, body)
}
