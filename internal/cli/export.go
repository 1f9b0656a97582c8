package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commands",
	}

	cmd.AddCommand(newExportPDFCmd())
	return cmd
}

func newExportPDFCmd() *cobra.Command {
	var messageFile, out string

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export a roster message as a PDF",
		Long: `Export a roster message as a PDF.

Without --message-file the latest saved message is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := exportedMessage(messageFile)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}

			n, err := client.Download("/api/export-pdf", map[string]string{"message": message}, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Wrote %s (%d bytes)", out, n))
			return nil
		},
	}

	cmd.Flags().StringVar(&messageFile, "message-file", "", "File with the message text")
	cmd.Flags().StringVar(&out, "out", "cwl-message.pdf", "Output file")

	return cmd
}

func exportedMessage(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var latest []Message
	if err := client.Get("/api/messages?limit=1", &latest); err != nil {
		return "", err
	}
	if len(latest) == 0 {
		return "", fmt.Errorf("no saved message, generate one with 'cwl roster message'")
	}
	return latest[0].Message, nil
}
