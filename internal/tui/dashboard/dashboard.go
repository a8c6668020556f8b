// ABOUTME: Dashboard screen with the learner's balance and progress
// ABOUTME: Loads the summary on entry and renders it in metric blocks

package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// LoadedMsg carries the dashboard summary
type LoadedMsg struct {
	screen.Result
	Summary *client.Summary
}

// Dashboard displays the learner summary
type Dashboard struct {
	client  *client.Client
	route   nav.State
	summary *client.Summary
	err     error
	width   int
	height  int
}

// New creates a dashboard that loads through the given client
func New(c *client.Client, width, height int) *Dashboard {
	return &Dashboard{
		client: c,
		route:  nav.ToSection(nav.SectionDashboard),
		width:  width,
		height: height,
	}
}

// Init implements screen.Screen
func (d *Dashboard) Init() tea.Cmd {
	return d.load()
}

func (d *Dashboard) load() tea.Cmd {
	route := d.route
	return func() tea.Msg {
		sum, err := d.client.Dashboard(context.Background())
		return LoadedMsg{Result: screen.Result{Route: route, Err: err}, Summary: sum}
	}
}

// SetSummary replaces the displayed data
func (d *Dashboard) SetSummary(sum *client.Summary) {
	d.summary = sum
	d.err = nil
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update implements screen.Screen
func (d *Dashboard) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
	case LoadedMsg:
		if msg.Err != nil {
			d.err = msg.Err
			return d, nil
		}
		d.SetSummary(msg.Summary)
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			d.summary = nil
			d.err = nil
			return d, d.load()
		case "l":
			return d, screen.Go(nav.ToCategories())
		case "w":
			return d, screen.Go(nav.ToSection(nav.SectionWallet))
		}
	}
	return d, nil
}

// View implements screen.Screen
func (d *Dashboard) View() string {
	if d.err != nil {
		return styles.StatusCritical.Render("Error: " + d.err.Error())
	}
	if d.summary == nil {
		return styles.Panel.Width(max(d.width-4, 20)).Render("Loading your dashboard...")
	}

	var sb strings.Builder
	p := d.summary.Profile

	sb.WriteString(styles.Title.Render(fmt.Sprintf("Welcome back, %s", p.Name)))
	sb.WriteString("\n")
	sb.WriteString(widgets.RoleBadge(p.IsAdmin))
	sb.WriteString("  ")
	sb.WriteString(styles.Subtitle.Render(p.Email))
	sb.WriteString("\n\n")

	config := widgets.DefaultMetricBlockConfig()
	blocks := []string{
		widgets.MetricBlock(icons.Token, "Balance", fmt.Sprintf("%d $READS", d.summary.Balance), "tokens earned", config),
		widgets.CountBlock(icons.Lesson, "Lessons", d.summary.Stats.LessonsCompleted, "completed", config),
		widgets.CountBlock(icons.Quiz, "Quizzes", d.summary.Stats.QuizzesTaken, "taken", config),
	}

	// Stack blocks when the terminal is too narrow for a row
	if d.width > 0 && d.width < config.Width*len(blocks)+len(blocks) {
		sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	} else {
		var row []string
		for i, b := range blocks {
			if i > 0 {
				row = append(row, " ")
			}
			row = append(row, b)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	sb.WriteString("\n\n")

	sb.WriteString(styles.KeyStyle.Render("l"))
	sb.WriteString(" Continue learning   ")
	sb.WriteString(styles.KeyStyle.Render("w"))
	sb.WriteString(" Open wallet")

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

// Help implements screen.Screen
func (d *Dashboard) Help() []string {
	return []string{"l Learn", "w Wallet", "r Refresh", "m Menu", "q Quit"}
}

// Capturing implements screen.Screen
func (d *Dashboard) Capturing() bool {
	return false
}
