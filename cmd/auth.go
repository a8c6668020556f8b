// ABOUTME: Auth commands for signing in, registering, and signing out
// ABOUTME: Prompts with huh for missing credentials when attached to a terminal

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign up, or sign out",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			email, password := authEmail, authPassword
			if err := promptMissing(&email, &password, nil); err != nil {
				format.PrintError(os.Stdout, "%v", err)
				return exitError
			}
			return runLogin(ctx, os.Stdout, email, password)
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			input := client.SignupInput{Name: authName, Email: authEmail, Password: authPassword}
			if err := promptMissing(&input.Email, &input.Password, &input.Name); err != nil {
				format.PrintError(os.Stdout, "%v", err)
				return exitError
			}
			return runSignup(ctx, os.Stdout, input)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runLogout(ctx, os.Stdout)
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is saved",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runAuthStatus(os.Stdout, time.Now())
		})
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, signupCmd, logoutCmd, authStatusCmd)

	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")
}

// promptMissing asks for empty credentials on a terminal. name is only
// prompted when non-nil.
func promptMissing(email, password, name *string) error {
	needName := name != nil && *name == ""
	if *email != "" && *password != "" && !needName {
		return nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	var fields []huh.Field
	if needName {
		fields = append(fields, huh.NewInput().Title("Name").Value(name))
	}
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	if _, err := s.client.Login(ctx, email, password); err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Signed in as %s", email)
	return exitOK
}

// runSignup registers and returns exit code
func runSignup(ctx context.Context, w io.Writer, input client.SignupInput) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	if _, err := s.client.Signup(ctx, input); err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Account created, signed in as %s", input.Email)
	return exitOK
}

// runLogout clears the session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	if err := s.client.Logout(ctx); err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Signed out")
	return exitOK
}

// authStatus is the JSON/YAML shape of auth status
type authStatus struct {
	SignedIn  bool       `json:"signed_in" yaml:"signed_in"`
	Backend   string     `json:"backend" yaml:"backend"`
	Session   string     `json:"session_file,omitempty" yaml:"session_file,omitempty"`
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool       `json:"expired" yaml:"expired"`
}

// runAuthStatus reports the local session without calling the backend
func runAuthStatus(w io.Writer, now time.Time) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}

	status := authStatus{
		SignedIn: s.client.IsAuthenticated(),
		Backend:  s.client.BaseURL(),
	}
	if s.cfg.Token == "" && !s.cfg.NoPersist {
		status.Session = s.cfg.SessionPath()
	}
	if info, ok := client.InspectToken(s.client.Token()); ok {
		status.Subject = info.Subject
		if !info.ExpiresAt.IsZero() {
			exp := info.ExpiresAt
			status.ExpiresAt = &exp
			status.Expired = info.Expired(now)
		}
	}

	return s.print(formatAuthStatus(status, now))
}

func formatAuthStatus(st authStatus, now time.Time) *format.Table {
	signedIn := "no"
	if st.SignedIn {
		signedIn = "yes"
	}
	fields := [][2]string{
		{"Signed in", signedIn},
		{"Backend", st.Backend},
	}
	if st.Session != "" {
		fields = append(fields, [2]string{"Session file", st.Session})
	}
	if st.Subject != "" {
		fields = append(fields, [2]string{"User ID", st.Subject})
	}
	if st.ExpiresAt != nil {
		expiry := st.ExpiresAt.Local().Format("2006-01-02 15:04")
		if st.Expired {
			expiry += " (expired)"
		} else {
			expiry += fmt.Sprintf(" (in %s)", st.ExpiresAt.Sub(now).Round(time.Minute))
		}
		fields = append(fields, [2]string{"Expires", expiry})
	}
	return format.Record(st, fields...)
}
