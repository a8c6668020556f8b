// ABOUTME: Profile screen with identity, role, and learning progress
// ABOUTME: A rejected profile fetch surfaces as a session-invalid result

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
	"golang.org/x/sync/errgroup"
)

// LoadedMsg carries the profile and its stats
type LoadedMsg struct {
	screen.Result
	Profile *client.Profile
	Stats   client.Stats
}

// Profile shows the signed-in user
type Profile struct {
	client  *client.Client
	route   nav.State
	profile *client.Profile
	stats   client.Stats
	err     error
	loading bool
	spinner spinner.Model
}

// New creates the profile screen
func New(c *client.Client) *Profile {
	return &Profile{
		client:  c,
		route:   nav.ToSection(nav.SectionProfile),
		loading: true,
		spinner: widgets.NewSpinner(),
	}
}

// Init implements screen.Screen
func (p *Profile) Init() tea.Cmd {
	route := p.route
	load := func() tea.Msg {
		msg := LoadedMsg{Result: screen.Result{Route: route}}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			prof, err := p.client.Profile(ctx)
			msg.Profile = prof
			return err
		})
		g.Go(func() error {
			msg.Stats = p.client.Stats(ctx)
			return nil
		})
		msg.Err = g.Wait()
		return msg
	}
	return tea.Batch(load, p.spinner.Tick)
}

// Update implements screen.Screen
func (p *Profile) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		p.loading = false
		p.err = msg.Err
		p.profile = msg.Profile
		p.stats = msg.Stats
	case spinner.TickMsg:
		if p.loading {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}
	}
	return p, nil
}

// View implements screen.Screen
func (p *Profile) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Profile.String() + " Profile"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(widgets.Loading(p.spinner, "Loading profile..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + p.err.Error()))
		return sb.String()
	}

	prof := p.profile
	row := func(label, value string) {
		sb.WriteString(fmt.Sprintf("%s %s\n", styles.KeyStyle.Render(fmt.Sprintf("%-8s", label)), value))
	}
	row("Name", styles.ValueStyle.Render(prof.Name))
	row("Email", prof.Email)
	row("Role", widgets.RoleBadge(prof.IsAdmin))
	if !prof.JoinedAt.IsZero() {
		row("Joined", prof.JoinedAt.Format("January 2, 2006"))
	}
	row("Avatar", styles.Subtitle.Render(prof.AvatarURL))
	sb.WriteString("\n")

	config := widgets.DefaultMetricBlockConfig()
	sb.WriteString(widgets.CountBlock(icons.Lesson, "Lessons", p.stats.LessonsCompleted, "completed", config))
	sb.WriteString("\n")
	sb.WriteString(widgets.CountBlock(icons.Quiz, "Quizzes", p.stats.QuizzesTaken, "taken", config))
	return sb.String()
}

// Help implements screen.Screen
func (p *Profile) Help() []string {
	return []string{"b Back", "m Menu", "q Quit"}
}

// Capturing implements screen.Screen
func (p *Profile) Capturing() bool {
	return false
}
