// ABOUTME: Sign-in and registration screens built on huh forms
// ABOUTME: A successful submit stores the token and resets navigation to the dashboard

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// DoneMsg reports the outcome of a login or signup
type DoneMsg struct {
	screen.Result
}

// Auth collects credentials for one of the two auth sub-views
type Auth struct {
	client  *client.Client
	route   nav.State
	signup  bool
	form    *huh.Form
	busy    bool
	err     error
	notice  string
	spinner spinner.Model

	name     string
	email    string
	password string
	confirm  string
}

// New creates the screen for the login or signup route. A notice, such as
// an expired-session message, is shown above the form.
func New(c *client.Client, route nav.State, notice string) *Auth {
	a := &Auth{
		client:  c,
		route:   route,
		signup:  route.SubView == nav.ViewSignup,
		notice:  notice,
		spinner: widgets.NewSpinner(),
	}
	a.form = a.buildForm()
	return a
}

func required(field string) func(string) error {
	return func(s string) error {
		return client.ValidateField(field, s, "required")
	}
}

func validateEmail(s string) error {
	return client.ValidateField("email", s, "required,email")
}

func (a *Auth) buildForm() *huh.Form {
	email := huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(&a.email).
		Validate(validateEmail)
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&a.password).
		Validate(required("password"))

	if !a.signup {
		return huh.NewForm(
			huh.NewGroup(email, password).
				Title(icons.SignIn.String() + " Sign in to $READS").
				Description("Learn, pass quizzes, earn tokens"),
		).WithTheme(styles.FormTheme()).WithShowHelp(false)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&a.name).
				Validate(required("name")),
			email,
			password,
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&a.confirm).
				Validate(a.matchPassword),
		).Title(icons.SignIn.String() + " Create your account").
			Description("Every passed quiz earns $READS"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (a *Auth) matchPassword(s string) error {
	if s != a.password {
		return errors.New("passwords do not match")
	}
	return nil
}

// Init implements screen.Screen
func (a *Auth) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements screen.Screen
func (a *Auth) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		a.busy = false
		if msg.Err != nil {
			// Nothing was stored; start over with the email kept
			a.err = msg.Err
			a.password, a.confirm = "", ""
			a.form = a.buildForm()
			return a, a.form.Init()
		}
		return a, tea.Batch(
			screen.Reset(nav.ToSection(nav.SectionDashboard)),
			screen.Emit(screen.SignedIn{}),
		)

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if a.busy {
			return a, nil
		}
		switch msg.String() {
		case "ctrl+n":
			if a.signup {
				return a, screen.Go(nav.ToSection(nav.SectionAuth))
			}
			return a, screen.Go(nav.ToSignup())
		case "esc":
			if a.signup {
				return a, screen.Back()
			}
			return a, nil
		}
	}

	if a.busy {
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}
	if a.form.State == huh.StateCompleted {
		return a, a.submit()
	}
	return a, cmd
}

func (a *Auth) submit() tea.Cmd {
	a.busy = true
	a.err = nil
	route := a.route
	name, email, password := strings.TrimSpace(a.name), strings.TrimSpace(a.email), a.password
	signup := a.signup

	send := func() tea.Msg {
		var err error
		if signup {
			_, err = a.client.Signup(context.Background(), client.SignupInput{Name: name, Email: email, Password: password})
		} else {
			_, err = a.client.Login(context.Background(), email, password)
		}
		return DoneMsg{Result: screen.Result{Route: route, Err: err}}
	}
	return tea.Batch(send, a.spinner.Tick)
}

// View implements screen.Screen
func (a *Auth) View() string {
	var sb strings.Builder
	if a.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(a.notice))
		sb.WriteString("\n\n")
	}
	if a.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + a.err.Error()))
		sb.WriteString("\n\n")
	}
	if a.busy {
		label := "Signing in..."
		if a.signup {
			label = "Creating account..."
		}
		sb.WriteString(widgets.Loading(a.spinner, label))
		return sb.String()
	}
	sb.WriteString(a.form.View())
	return sb.String()
}

// Help implements screen.Screen
func (a *Auth) Help() []string {
	if a.signup {
		return []string{"Tab Next", "Enter Submit", "ctrl+n Sign in", "Esc Back"}
	}
	return []string{"Tab Next", "Enter Submit", "ctrl+n Create account", "ctrl+c Quit"}
}

// Capturing implements screen.Screen
func (a *Auth) Capturing() bool {
	return true
}
