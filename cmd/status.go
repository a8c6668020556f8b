// ABOUTME: Status command for the reads CLI
// ABOUTME: Shows the dashboard summary of profile, progress, and balance

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your dashboard summary",
	Long:  `Display your name, learning progress, and token balance in one view.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runStatus(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus executes the summary and returns exit code
func runStatus(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}

	sum, err := s.client.Dashboard(ctx)
	if err != nil {
		return s.fail(err)
	}

	if IsJSONOutput(s.cfg) {
		fmt.Fprintln(w, formatStatusJSON(sum))
	} else {
		fmt.Fprintln(w, formatStatusHuman(sum))
	}
	return exitOK
}

// formatStatusHuman formats the summary for human readability
func formatStatusHuman(sum *client.Summary) string {
	greeting := fmt.Sprintf("Welcome back, %s", sum.Profile.Name)
	if sum.Profile.IsAdmin {
		greeting += " (admin)"
	}
	return fmt.Sprintf(`%s

Balance:           %d $READS
Lessons completed: %d
Quizzes taken:     %d`,
		greeting, sum.Balance, sum.Stats.LessonsCompleted, sum.Stats.QuizzesTaken)
}

// formatStatusJSON formats the summary as JSON
func formatStatusJSON(sum *client.Summary) string {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
