package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var name, th string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Sign a player up for the CWL",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_name": name, "th_level": th}
			var result Player

			if err := client.Post("/api/player-registrations", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&th, "th", "", "Town hall level, e.g. th15 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("th")

	return cmd
}

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Registration management commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registrations in sign-up order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player
			if err := client.Get("/api/player-registrations", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get("/api/player-registrations/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/player-registrations/" + url.PathEscape(args[0])); err != nil {
				return err
			}
			output(cmd).PrintMessage(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/player-registrations"); err != nil {
				return err
			}
			output(cmd).PrintMessage("Registrations cleared")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "file",
		Short: "Show the registrations text file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RegistrationsFile
			if err := client.Get("/api/registrations-file", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
