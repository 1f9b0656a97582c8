package cli

import (
	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster session commands",
	}

	cmd.AddCommand(newRosterStartCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster
			if err := client.Get("/api/roster", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(newRosterMoveCmd())
	cmd.AddCommand(newRosterStepCmd("up", "Move a player one position up"))
	cmd.AddCommand(newRosterStepCmd("down", "Move a player one position down"))

	cmd.AddCommand(&cobra.Command{
		Use:   "message",
		Short: "Generate and save the roster message",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Message
			if err := client.Post("/api/roster/message", nil, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "discard",
		Short: "Discard the current roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/roster"); err != nil {
				return err
			}
			output(cmd).PrintMessage("Roster discarded")
			return nil
		},
	})

	return cmd
}

func newRosterStartCmd() *cobra.Command {
	var clanFlags []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a roster session",
		Long: `Start a roster session and distribute the registered players over the clans.

Without --clan the saved clans are used.`,
		Example: `  cwl roster start --clan "Eclipse:15:Master League" --clan "Eclipse 2:15:Crystal League"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clans := make([]Clan, 0, len(clanFlags))
			for _, v := range clanFlags {
				c, err := parseClan(v)
				if err != nil {
					return err
				}
				clans = append(clans, c)
			}

			var result Roster
			if err := client.Post("/api/roster", map[string]any{"clans": clans}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&clanFlags, "clan", nil, "Clan as NAME:PARTICIPANTS:LEAGUE (repeatable)")

	return cmd
}

func newRosterMoveCmd() *cobra.Command {
	var player, from, to string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a player to another clan",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": player, "from_clan_id": from, "to_clan_id": to}
			var result Roster
			if err := client.Post("/api/roster/move", req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Player ID (required)")
	cmd.Flags().StringVar(&from, "from", "", "Source clan ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination clan ID (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newRosterStepCmd(direction, short string) *cobra.Command {
	var clanID string
	var index int

	cmd := &cobra.Command{
		Use:   direction,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"clan_id": clanID, "from_index": index, "direction": direction}
			var result Roster
			if err := client.Post("/api/roster/reorder", req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&clanID, "clan", "", "Clan ID (required)")
	cmd.Flags().IntVar(&index, "index", 0, "Zero-based position of the player")
	_ = cmd.MarkFlagRequired("clan")

	return cmd
}
