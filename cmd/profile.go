// ABOUTME: Profile command showing the signed-in user
// ABOUTME: A rejected session is cleared and reported with exit code 1

package cmd

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and progress",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runProfile(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

// profileView is the JSON/YAML shape of the profile command
type profileView struct {
	client.Profile `yaml:",inline"`
	Stats          client.Stats `json:"stats" yaml:"stats"`
}

// runProfile fetches profile and stats and returns exit code
func runProfile(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}

	p, err := s.client.Profile(ctx)
	if err != nil {
		return s.fail(err)
	}
	stats := s.client.Stats(ctx)

	return s.print(formatProfile(profileView{Profile: *p, Stats: stats}))
}

func formatProfile(v profileView) *format.Table {
	role := "learner"
	if v.IsAdmin {
		role = "admin"
	}
	joined := "unknown"
	if !v.JoinedAt.IsZero() {
		joined = v.JoinedAt.Format("2006-01-02")
	}
	return format.Record(v,
		[2]string{"Name", v.Name},
		[2]string{"Email", v.Email},
		[2]string{"Role", role},
		[2]string{"Joined", joined},
		[2]string{"Lessons completed", strconv.Itoa(v.Stats.LessonsCompleted)},
		[2]string{"Quizzes taken", strconv.Itoa(v.Stats.QuizzesTaken)},
		[2]string{"Avatar", v.AvatarURL},
	)
}
