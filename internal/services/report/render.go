// Package report turns finished clan rosters into the CWL roster message
// that is pasted into the clan chat or exported as a PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/mcoot/cwlroster/internal/model"
)

// Separator closes each clan block
const Separator = "---"

// Render builds the roster message for the rosters in the order given.
// The output depends only on the input, so identical rosters always render
// to identical text.
func Render(rosters []model.ClanRoster) string {
	var b strings.Builder
	for _, r := range rosters {
		writeRoster(&b, r)
	}
	return b.String()
}

// RenderRoster builds the block for a single clan
func RenderRoster(r model.ClanRoster) string {
	var b strings.Builder
	writeRoster(&b, r)
	return b.String()
}

func writeRoster(b *strings.Builder, r model.ClanRoster) {
	fmt.Fprintf(b, "%s\n\n", r.Clan.League)
	fmt.Fprintf(b, "%s %d partecipanti\n\n", r.Clan.Name, r.Clan.Capacity)

	for i, p := range r.Players {
		fmt.Fprintf(b, "%d) %s %s\n", i+1, p.Name, p.TownHall)
	}

	if missing := r.Missing(); missing > 0 {
		fmt.Fprintf(b, "\nMancano ancora %d player\n", missing)
	}

	fmt.Fprintf(b, "\n%s\n\n", Separator)
}
