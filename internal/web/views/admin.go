package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/cwlroster/internal/model"
)

// AdminData is the roster building page
type AdminData struct {
	PageData
	Players []model.RegisteredPlayer
	Clans   []model.Clan
	// Rosters is nil until a roster session has been started
	Rosters []model.ClanRoster
	Message *model.CwlMessage
}

// Admin renders registrations, saved clans, the roster session and the last message
func Admin(data AdminData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		writeRegistrations(p, data.Players)
		writeClans(p, data.Clans)
		writeRosters(p, data.Rosters)
		writeMessage(p, data.Message)
		return p.err
	})
	return Layout(data.PageData, body)
}

func writeRegistrations(p *printer, players []model.RegisteredPlayer) {
	p.f("<section id=\"registrations\">\n<h2>Iscrizioni (%d)</h2>\n", len(players))
	if len(players) == 0 {
		p.raw("<p class=\"empty\">Nessuna iscrizione</p>\n</section>\n")
		return
	}
	p.raw("<table>\n<thead><tr><th>#</th><th>Nome</th><th>TH</th><th></th></tr></thead>\n<tbody>\n")
	for i, pl := range players {
		p.f("<tr data-player-id=\"%s\"><td>%d</td><td class=\"name\">%s</td><td class=\"th\">%s</td>",
			string(pl.ID), i+1, pl.Name, string(pl.TownHall))
		p.f("<td><form method=\"post\" action=\"/admin/registrations/%s/delete\"><button type=\"submit\">Elimina</button></form></td></tr>\n",
			string(pl.ID))
	}
	p.raw("</tbody>\n</table>\n")
	p.raw("<form method=\"post\" action=\"/admin/registrations/clear\" id=\"clear-registrations\"><button type=\"submit\">Cancella tutte</button></form>\n")
	p.raw("</section>\n")
}

func writeClans(p *printer, clans []model.Clan) {
	p.raw("<section id=\"clans\">\n<h2>Clan</h2>\n<ul>\n")
	for _, c := range clans {
		p.f("<li data-clan-id=\"%s\">%s (%d, %s) ", string(c.ID), c.Name, c.Capacity, string(c.League))
		p.f("<form method=\"post\" action=\"/admin/clans/%s/delete\" class=\"inline\"><button type=\"submit\">Elimina</button></form></li>\n",
			string(c.ID))
	}
	p.raw("</ul>\n<form method=\"post\" action=\"/admin/clans\" id=\"add-clan\">\n")
	p.raw("<input name=\"name\" type=\"text\" placeholder=\"Nome clan\" required>\n")
	p.raw("<input name=\"participants\" type=\"number\" min=\"1\" value=\"15\" required>\n<select name=\"league\">\n")
	for _, l := range model.Leagues {
		p.f("<option value=\"%s\">%s</option>\n", string(l), string(l))
	}
	p.raw("</select>\n<button type=\"submit\">Aggiungi clan</button>\n</form>\n</section>\n")
}

func writeRosters(p *printer, rosters []model.ClanRoster) {
	p.raw("<section id=\"roster\">\n<h2>Roster</h2>\n")
	if rosters == nil {
		p.raw("<form method=\"post\" action=\"/admin/roster\" id=\"start-roster\"><button type=\"submit\">Crea roster</button></form>\n</section>\n")
		return
	}

	for _, r := range rosters {
		p.f("<div class=\"clan-roster\" data-clan-id=\"%s\">\n<h3>%s</h3>\n<p class=\"league\">%s</p>\n",
			string(r.Clan.ID), r.Clan.Name, string(r.Clan.League))
		p.raw("<ol>\n")
		for i, pl := range r.Players {
			p.f("<li data-player-id=\"%s\"><span class=\"name\">%s</span> <span class=\"th\">%s</span>\n",
				string(pl.ID), pl.Name, string(pl.TownHall))
			writeReorderForm(p, r.Clan.ID, i, "up", "Su")
			writeReorderForm(p, r.Clan.ID, i, "down", "Giu")
			writeMoveForm(p, pl.ID, r.Clan.ID, rosters)
			p.raw("</li>\n")
		}
		p.raw("</ol>\n")
		if missing := r.Missing(); missing > 0 {
			p.f("<p class=\"missing\">Mancano ancora %d player</p>\n", missing)
		}
		p.raw("</div>\n")
	}

	p.raw("<form method=\"post\" action=\"/admin/roster/message\" id=\"generate-message\"><button type=\"submit\">Genera messaggio</button></form>\n")
	p.raw("<form method=\"post\" action=\"/admin/roster/discard\" id=\"discard-roster\"><button type=\"submit\">Annulla roster</button></form>\n")
	p.raw("</section>\n")
}

func writeReorderForm(p *printer, clanID model.ClanID, index int, direction, label string) {
	p.raw("<form method=\"post\" action=\"/admin/roster/reorder\" class=\"inline reorder\">")
	p.f("<input type=\"hidden\" name=\"clan_id\" value=\"%s\"><input type=\"hidden\" name=\"index\" value=\"%d\">",
		string(clanID), index)
	p.f("<input type=\"hidden\" name=\"direction\" value=\"%s\"><button type=\"submit\">%s</button></form>\n", direction, label)
}

func writeMoveForm(p *printer, playerID model.PlayerID, from model.ClanID, rosters []model.ClanRoster) {
	if len(rosters) < 2 {
		return
	}
	p.raw("<form method=\"post\" action=\"/admin/roster/move\" class=\"inline move\">")
	p.f("<input type=\"hidden\" name=\"player_id\" value=\"%s\"><input type=\"hidden\" name=\"from_clan_id\" value=\"%s\">",
		string(playerID), string(from))
	p.raw("<select name=\"to_clan_id\">")
	for _, r := range rosters {
		if r.Clan.ID == from {
			continue
		}
		p.f("<option value=\"%s\">%s</option>", string(r.Clan.ID), r.Clan.Name)
	}
	p.raw("</select><button type=\"submit\">Sposta</button></form>\n")
}

func writeMessage(p *printer, msg *model.CwlMessage) {
	if msg == nil {
		return
	}
	p.raw("<section id=\"message\">\n<h2>Messaggio</h2>\n")
	p.f("<pre>%s</pre>\n", msg.Content)
	p.raw("<form method=\"post\" action=\"/admin/export-pdf\" id=\"export-pdf\">\n")
	p.f("<textarea name=\"message\" rows=\"12\">%s</textarea>\n", msg.Content)
	p.raw("<button type=\"submit\">Scarica PDF</button>\n</form>\n</section>\n")
}
