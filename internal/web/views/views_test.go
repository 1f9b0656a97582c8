package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/model"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLayoutFlashAndNav(t *testing.T) {
	doc := renderDoc(t, Login(LoginData{
		PageData: PageData{Title: "Accesso", Flash: &FlashMessage{Type: "error", Message: "a < b"}},
	}))

	assert.Equal(t, "Accesso - CWL Roster", doc.Find("title").Text())
	assert.Equal(t, "a < b", doc.Find(".flash-error").Text())
	assert.Equal(t, 1, doc.Find("nav a[href='/admin/login']").Length())
	assert.Equal(t, 0, doc.Find("nav form[action='/admin/logout']").Length())
}

func TestAdminWithoutSessionOffersStart(t *testing.T) {
	doc := renderDoc(t, Admin(AdminData{PageData: PageData{Title: "Admin", Admin: true}}))

	assert.Equal(t, 1, doc.Find("form#start-roster").Length())
	assert.Equal(t, 0, doc.Find(".clan-roster").Length())
	assert.Equal(t, 0, doc.Find("#message").Length())
	assert.Equal(t, len(model.Leagues), doc.Find("#add-clan select[name='league'] option").Length())
}

func TestAdminRosterForms(t *testing.T) {
	rosters := []model.ClanRoster{
		{
			Clan:    model.ClanDefinition{ID: "a", Name: "Eclipse", Capacity: 2, League: model.LeagueGold},
			Players: []model.RegisteredPlayer{{ID: "p1", Name: "Ann", TownHall: "th15"}},
		},
		{
			Clan:    model.ClanDefinition{ID: "b", Name: "Eclipse 2", Capacity: 1, League: model.LeagueSilver},
			Players: []model.RegisteredPlayer{{ID: "p2", Name: "Bob", TownHall: "th12"}},
		},
	}
	doc := renderDoc(t, Admin(AdminData{Rosters: rosters}))

	first := doc.Find(`.clan-roster[data-clan-id="a"]`)
	assert.Equal(t, "Mancano ancora 1 player", first.Find(".missing").Text())
	assert.Equal(t, 2, first.Find("form.reorder").Length())

	// The move form only offers the other clans
	options := first.Find("form.move select option")
	require.Equal(t, 1, options.Length())
	value, _ := options.Attr("value")
	assert.Equal(t, "b", value)

	assert.Equal(t, 0, doc.Find(`.clan-roster[data-clan-id="b"] .missing`).Length())
}

func TestAdminSingleClanHasNoMoveForm(t *testing.T) {
	rosters := []model.ClanRoster{{
		Clan:    model.ClanDefinition{ID: "a", Name: "Eclipse", Capacity: 1, League: model.LeagueGold},
		Players: []model.RegisteredPlayer{{ID: "p1", Name: "Ann", TownHall: "th15"}},
	}}
	doc := renderDoc(t, Admin(AdminData{Rosters: rosters}))

	assert.Equal(t, 0, doc.Find("form.move").Length())
}

func TestAdminMessage(t *testing.T) {
	msg := &model.CwlMessage{ID: "m1", Content: "Gold League\n\n1) <Ann> th15\n"}
	doc := renderDoc(t, Admin(AdminData{Message: msg}))

	assert.Equal(t, msg.Content, doc.Find("#message pre").Text())
	assert.Equal(t, msg.Content, doc.Find("#export-pdf textarea").Text())
}

type clanLabel string

func TestPrinterEscapesNamedStrings(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}

	p.f("<b>%s</b> <i>%s</i> %d", clanLabel("<script>x</script>"), model.League("A&B"), 3)

	require.NoError(t, p.err)
	assert.Equal(t, "<b>&lt;script&gt;x&lt;/script&gt;</b> <i>A&amp;B</i> 3", buf.String())
}
