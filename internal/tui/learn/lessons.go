// ABOUTME: Lesson list screen for one category
// ABOUTME: Reads the category from the route payload and lists its lessons in order

package learn

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
)

// LessonsLoadedMsg carries one category's lessons
type LessonsLoadedMsg struct {
	screen.Result
	Lessons []client.LessonSummary
}

// Lessons lists the lessons of a category
type Lessons struct {
	client   *client.Client
	route    nav.State
	category string
	hasRef   bool
	lessons  []client.LessonSummary
	loading  bool
	cursor   int
	spinner  spinner.Model
}

// NewLessons creates the list for the category named in the route
func NewLessons(c *client.Client, route nav.State) *Lessons {
	ref, ok := nav.PayloadOf[nav.CategoryRef](route)
	return &Lessons{
		client:   c,
		route:    route,
		category: ref.Name,
		hasRef:   ok,
		loading:  ok,
		spinner:  widgets.NewSpinner(),
	}
}

// Init implements screen.Screen
func (s *Lessons) Init() tea.Cmd {
	if !s.hasRef {
		return nil
	}
	route, category := s.route, s.category
	load := func() tea.Msg {
		return LessonsLoadedMsg{
			Result:  screen.Result{Route: route},
			Lessons: s.client.Lessons(context.Background(), category),
		}
	}
	return tea.Batch(load, s.spinner.Tick)
}

// Update implements screen.Screen
func (s *Lessons) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case LessonsLoadedMsg:
		s.loading = false
		s.lessons = msg.Lessons
		s.cursor = 0
	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.lessons)-1 {
				s.cursor++
			}
		case "enter":
			if len(s.lessons) > 0 {
				return s, screen.Go(nav.ToLessonDetail(s.lessons[s.cursor].ID))
			}
		}
	}
	return s, nil
}

// View implements screen.Screen
func (s *Lessons) View() string {
	var sb strings.Builder

	if !s.hasRef {
		sb.WriteString(styles.Title.Render("Lessons"))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("No category selected"))
		return sb.String()
	}

	sb.WriteString(styles.Swatch(s.category))
	sb.WriteString(" ")
	sb.WriteString(styles.Title.Render(s.category))
	sb.WriteString("\n")

	if s.loading {
		sb.WriteString(widgets.Loading(s.spinner, "Loading lessons..."))
		return sb.String()
	}
	if len(s.lessons) == 0 {
		sb.WriteString(styles.Subtitle.Render("No lessons in this category yet"))
		return sb.String()
	}

	for i, l := range s.lessons {
		label := fmt.Sprintf("%2d. %s", l.OrderIndex, l.Title)
		if l.HasQuiz {
			label += " " + icons.Quiz.String()
		}
		sb.WriteString(styles.Row(label, i == s.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Help implements screen.Screen
func (s *Lessons) Help() []string {
	return []string{"↑↓ Navigate", "Enter Open", "b Back", "m Menu"}
}

// Capturing implements screen.Screen
func (s *Lessons) Capturing() bool {
	return false
}
