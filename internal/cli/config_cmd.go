package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Clan configuration commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the public clan configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any
			if err := client.Get("/api/clan-configuration", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	var file string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the clan configuration with a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var body map[string]any
			if err := json.Unmarshal(data, &body); err != nil {
				return fmt.Errorf("invalid configuration file: %w", err)
			}

			var result map[string]any
			if err := client.Post("/api/clan-configuration", body, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
	set.Flags().StringVar(&file, "file", "", "JSON configuration file (required)")
	_ = set.MarkFlagRequired("file")
	cmd.AddCommand(set)

	return cmd
}

func newClashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clash",
		Short: "Clash of Clans API lookups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "members <clan-tag>",
		Short: "List the members of a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := strings.TrimPrefix(args[0], "#")
			var result []ClashMember
			if err := client.Get("/api/clash-players/"+url.PathEscape(tag), &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
