package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Saved roster message commands",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved messages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Message
			if err := client.Get(fmt.Sprintf("/api/messages?limit=%d", limit), &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum number of messages (0 for all)")
	cmd.AddCommand(list)

	var file string
	save := &cobra.Command{
		Use:   "save",
		Short: "Save an edited message from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var result Message
			if err := client.Post("/api/messages", map[string]string{"content": string(content)}, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
	save.Flags().StringVar(&file, "file", "", "File with the message text (required)")
	_ = save.MarkFlagRequired("file")
	cmd.AddCommand(save)

	return cmd
}
