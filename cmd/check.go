// ABOUTME: Check command for the reads CLI
// ABOUTME: Verifies backend reachability and session validity for scripts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var requireAdmin bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check backend and session readiness",
	Long: `Check that the backend is reachable and the saved session is usable.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (backend unreachable, bad configuration)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runCheck(ctx, os.Stdout, time.Now())
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&requireAdmin, "require-admin", false, "Also require admin privileges")
}

// checkResult represents the result of a single readiness check
type checkResult struct {
	name   string
	detail string
	passed bool
}

// runCheck executes the readiness checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, now time.Time) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}

	if _, err := s.client.Health(ctx); err != nil {
		format.PrintError(w, "%v", err)
		return exitError
	}

	results := performChecks(ctx, s.client, now)

	if IsJSONOutput(s.cfg) {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return exitOutcome
	}
	return exitOK
}

// performChecks runs session checks in order, stopping at the first that
// makes the rest meaningless
func performChecks(ctx context.Context, c *client.Client, now time.Time) []checkResult {
	results := []checkResult{{name: "Backend reachable", detail: c.BaseURL(), passed: true}}

	if !c.IsAuthenticated() {
		return append(results, checkResult{name: "Signed in", detail: "no saved session", passed: false})
	}
	results = append(results, checkResult{name: "Signed in", detail: "session saved", passed: true})

	if info, ok := client.InspectToken(c.Token()); ok && !info.ExpiresAt.IsZero() {
		expiry := checkResult{name: "Token not expired", detail: info.ExpiresAt.Format(time.RFC3339), passed: !info.Expired(now)}
		results = append(results, expiry)
		if !expiry.passed {
			return results
		}
	}

	p, err := c.Profile(ctx)
	if err != nil {
		return append(results, checkResult{name: "Session accepted", detail: err.Error(), passed: false})
	}
	results = append(results, checkResult{name: "Session accepted", detail: p.Email, passed: true})

	if requireAdmin {
		detail := "admin"
		if !p.IsAdmin {
			detail = "not an admin"
		}
		results = append(results, checkResult{name: "Admin privileges", detail: detail, passed: p.IsAdmin})
	}
	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %s\n", symbol, r.name, r.detail)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) did not pass", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) passed", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]any{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
