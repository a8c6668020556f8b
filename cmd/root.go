// ABOUTME: Root command for the reads CLI
// ABOUTME: Handles global flags, configuration, and launching the TUI

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/config"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/readsmvp/reads-cli/internal/logger"
	"github.com/readsmvp/reads-cli/internal/tui"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitOK      = 0
	exitOutcome = 1 // quiz already completed or session no longer valid
	exitError   = 2
)

var jsonOutput bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "reads",
	Short: "Terminal client for the $READS learn-to-earn platform",
	Long: `reads is a terminal client for the $READS learn-to-earn platform.

Run without arguments to open the interactive app. Subcommands expose the
same operations for scripts.

Environment Variables:
  READS_API_URL     Backend URL (default: http://localhost:8000)
  READS_CONFIG_DIR  Directory for config.yaml, session.json, and debug.log
  READS_TOKEN       Use this bearer token instead of the saved session
  READS_LOG_LEVEL   debug, info, warn, or error
  READS_OUTPUT      table, json, yaml, or text`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return tui.Run(cfg)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Backend API URL (overrides READS_API_URL)")
	flags.String("config-dir", "", "Config directory (overrides READS_CONFIG_DIR)")
	flags.StringP("output", "o", "table", "Output format: table, json, yaml, text")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON (same as -o json)")
	flags.String("log-level", "info", "Log level when --debug is set")
	flags.Bool("debug", false, "Log requests to stderr")
	flags.Bool("no-persist", false, "Keep the session in memory only")
}

// loadConfig resolves configuration from the root flags and environment
func loadConfig() (*config.Config, error) {
	return config.Load(rootCmd.PersistentFlags())
}

// outputFormat returns the effective output format
func outputFormat(cfg *config.Config) string {
	if jsonOutput {
		return "json"
	}
	return cfg.Output
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput(cfg *config.Config) bool {
	return outputFormat(cfg) == "json"
}

// newClient builds a gateway from configuration
func newClient(cfg *config.Config) (*client.Client, error) {
	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIURL,
		client.WithTokenStore(cfg.TokenStore()),
		client.WithLogger(log),
	), nil
}

// session bundles what every subcommand needs
type session struct {
	cfg    *config.Config
	client *client.Client
	out    io.Writer
}

// newSession loads config and a client, printing any failure to w
func newSession(w io.Writer) (*session, bool) {
	cfg, err := loadConfig()
	if err != nil {
		format.PrintError(w, "%v", err)
		return nil, false
	}
	c, err := newClient(cfg)
	if err != nil {
		format.PrintError(w, "%v", err)
		return nil, false
	}
	return &session{cfg: cfg, client: c, out: w}, true
}

// print renders a result table in the configured format
func (s *session) print(t *format.Table) int {
	if err := format.Print(s.out, outputFormat(s.cfg), t); err != nil {
		format.PrintError(s.out, "%v", err)
		return exitError
	}
	return exitOK
}

// fail prints err and maps it to an exit code
func (s *session) fail(err error) int {
	format.PrintError(s.out, "%v", err)
	return exitCodeFor(err)
}

// exitCodeFor distinguishes domain outcomes from ordinary failures
func exitCodeFor(err error) int {
	if client.IsAlreadyCompleted(err) || client.IsSessionInvalid(err) {
		return exitOutcome
	}
	return exitError
}

// runWithSignals runs fn with a context canceled on SIGINT or SIGTERM and
// exits with its code when non-zero
func runWithSignals(fn func(ctx context.Context) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := fn(ctx)
	cancel()
	if exitCode != exitOK {
		os.Exit(exitCode)
	}
}

// errUsage reports bad command-line input
func errUsage(msg string, args ...any) error {
	return &client.Error{Kind: client.KindValidation, Message: fmt.Sprintf(msg, args...)}
}
