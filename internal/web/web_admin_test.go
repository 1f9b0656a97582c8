package web_test

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/model"
)

func TestAdminRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/admin")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))

	rr = ts.post("/admin/roster", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))
}

func TestLoginWithWrongPassword(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/admin/login", url.Values{"password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error", "Password errata")
}

func TestLoginAndLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	// Login page redirects once signed in
	rr := ts.get("/admin/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))

	doc := ts.adminPage()
	assertContainsElement(t, doc, "nav form[action='/admin/logout']")
	assertContainsText(t, doc, ".flash-success", "Accesso effettuato")

	rr = ts.post("/admin/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	rr = ts.get("/admin")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestAdminManagesRegistrations(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("Ann", "th14")
	ts.register("Bob", "th13")
	ts.login()

	doc := ts.adminPage()
	assertContainsText(t, doc, "#registrations h2", "Iscrizioni (2)")
	id, ok := doc.Find("#registrations tr[data-player-id]").First().Attr("data-player-id")
	require.True(t, ok)

	rr := ts.post("/admin/registrations/"+id+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc = ts.adminPage()
	assertContainsText(t, doc, "#registrations h2", "Iscrizioni (1)")
	assertContainsText(t, doc, "#registrations .name", "Bob")

	content, err := ts.app.Mirror.Read()
	require.NoError(t, err)
	assert.Equal(t, "Bob th13\n", content)

	rr = ts.post("/admin/registrations/clear", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc = ts.adminPage()
	assertContainsText(t, doc, "#registrations .empty", "Nessuna iscrizione")
}

func TestAdminBuildsRoster(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("Ann", "th15")
	ts.register("Bob", "th14")
	ts.register("Cid", "th13")
	ts.login()

	// Starting without clans fails with a readable message
	rr := ts.post("/admin/roster", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "almeno un clan")
	assertContainsElement(t, doc, "form#start-roster")

	for _, c := range []url.Values{
		{"name": {"Eclipse"}, "participants": {"2"}, "league": {string(model.LeagueMaster)}},
		{"name": {"Eclipse 2"}, "participants": {"2"}, "league": {string(model.LeagueGold)}},
	} {
		rr = ts.post("/admin/clans", c)
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}

	rr = ts.post("/admin/roster", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc = ts.adminPage()
	clanIDs := doc.Find(".clan-roster").Map(func(_ int, s *goquery.Selection) string {
		id, _ := s.Attr("data-clan-id")
		return id
	})
	require.Len(t, clanIDs, 2)
	assert.Equal(t, []string{"Ann", "Cid"}, rosterNames(doc, clanIDs[0]))
	assert.Equal(t, []string{"Bob"}, rosterNames(doc, clanIDs[1]))
	assertContainsText(t, doc, `.clan-roster[data-clan-id="`+clanIDs[1]+`"] .missing`, "Mancano ancora 1 player")

	// Cid moves up within the first clan
	rr = ts.post("/admin/roster/reorder", url.Values{"clan_id": {clanIDs[0]}, "index": {"1"}, "direction": {"up"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = ts.adminPage()
	assert.Equal(t, []string{"Cid", "Ann"}, rosterNames(doc, clanIDs[0]))

	// Ann moves to the second clan
	annID, _ := doc.Find(`.clan-roster[data-clan-id="` + clanIDs[0] + `"] li`).Eq(1).Attr("data-player-id")
	rr = ts.post("/admin/roster/move", url.Values{
		"player_id": {annID}, "from_clan_id": {clanIDs[0]}, "to_clan_id": {clanIDs[1]},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = ts.adminPage()
	assert.Equal(t, []string{"Cid"}, rosterNames(doc, clanIDs[0]))
	assert.Equal(t, []string{"Bob", "Ann"}, rosterNames(doc, clanIDs[1]))

	rr = ts.post("/admin/roster/message", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = ts.adminPage()
	assertContainsText(t, doc, "#message pre", "Eclipse 2 2 partecipanti")
	assertContainsText(t, doc, "#message pre", "2) Ann th15")
	assertContainsElement(t, doc, "form#export-pdf textarea[name='message']")

	rr = ts.post("/admin/roster/discard", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = ts.adminPage()
	assertNotContainsElement(t, doc, ".clan-roster")
	assertContainsElement(t, doc, "form#start-roster")
	assert.Equal(t, 0, ts.app.Planner.SessionCount())
}

func TestAdminReorderOutOfRangeShowsError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("Ann", "th15")
	ts.login()

	rr := ts.post("/admin/roster/reorder", url.Values{"clan_id": {"x"}, "index": {"0"}, "direction": {"up"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Nessun roster in corso")
}

func TestAdminExportsPDF(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	rr := ts.post("/admin/export-pdf", url.Values{"message": {"Gold League\n\n1) Ann th15"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "cwl-message.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))

	rr = ts.post("/admin/export-pdf", url.Values{"message": {"  "}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "vuoto")
}
