// ABOUTME: Health command for the reads CLI
// ABOUTME: Checks backend connectivity using its root status message

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the $READS backend and print its status message.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runHealth(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}

	resp, err := s.client.Health(ctx)
	if err != nil {
		format.PrintError(w, "%v", err)
		return exitError
	}

	if IsJSONOutput(s.cfg) {
		fmt.Fprintln(w, formatHealthJSON(s.client.BaseURL(), resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(s.client.BaseURL(), resp))
	}
	return exitOK
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Backend: %s
Status:  %s`, url, resp.Message)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]any{
		"backend": url,
		"message": resp.Message,
		"healthy": true,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
