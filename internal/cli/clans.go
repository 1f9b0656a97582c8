package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newClansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clans",
		Short: "Saved clan commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved clans",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Clan
			if err := client.Get("/api/clans", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(newClansAddCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/clans/" + url.PathEscape(args[0])); err != nil {
				return err
			}
			output(cmd).PrintMessage(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	})

	return cmd
}

func newClansAddCmd() *cobra.Command {
	var c Clan

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a clan taking part in the CWL",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Clan
			if err := client.Post("/api/clans", c, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "Clan name (required)")
	cmd.Flags().IntVar(&c.Participants, "participants", 15, "Number of roster slots")
	cmd.Flags().StringVar(&c.League, "league", "", `League, e.g. "Master League" (required)`)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("league")

	return cmd
}

// parseClan reads a NAME:PARTICIPANTS:LEAGUE flag value.
// The name may itself contain colons.
func parseClan(value string) (Clan, error) {
	leagueSep := strings.LastIndex(value, ":")
	if leagueSep < 0 {
		return Clan{}, fmt.Errorf("clan %q must be NAME:PARTICIPANTS:LEAGUE", value)
	}
	countSep := strings.LastIndex(value[:leagueSep], ":")
	if countSep < 0 {
		return Clan{}, fmt.Errorf("clan %q must be NAME:PARTICIPANTS:LEAGUE", value)
	}

	n, err := strconv.Atoi(strings.TrimSpace(value[countSep+1 : leagueSep]))
	if err != nil {
		return Clan{}, fmt.Errorf("clan %q: participants must be a number", value)
	}
	return Clan{
		Name:         strings.TrimSpace(value[:countSep]),
		Participants: n,
		League:       strings.TrimSpace(value[leagueSep+1:]),
	}, nil
}
