package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// healthPollInterval is the pause between attempts while --wait is set
const healthPollInterval = 500 * time.Millisecond

func newHealthCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long: `Check that the roster server is up and report its storage backend.

With --wait, keep retrying until the server answers or the duration passes,
which is useful right after starting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deadline := time.Now().Add(wait)
			for {
				var result HealthResult
				err := client.Get("/api/health", &result)
				if err == nil && result.Status != "ok" {
					err = fmt.Errorf("server reports status %q", result.Status)
				}
				if err == nil {
					output(cmd).Print(result)
					return nil
				}
				if !time.Now().Before(deadline) {
					return err
				}
				time.Sleep(healthPollInterval)
			}
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Retry until the server is healthy or this long has passed")
	return cmd
}
