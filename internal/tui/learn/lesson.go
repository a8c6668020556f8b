// ABOUTME: Lesson detail screen rendering the body in a scrollable viewport
// ABOUTME: Offers the lesson's quiz when one exists

package learn

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// LessonLoadedMsg carries one lesson
type LessonLoadedMsg struct {
	screen.Result
	Lesson *client.LessonDetail
}

// headerLines is the space taken above the viewport
const headerLines = 4

// Lesson shows one lesson body
type Lesson struct {
	client   *client.Client
	route    nav.State
	id       string
	hasRef   bool
	lesson   *client.LessonDetail
	err      error
	loading  bool
	spinner  spinner.Model
	viewport viewport.Model
}

// NewLesson creates the detail screen for the lesson named in the route
func NewLesson(c *client.Client, route nav.State, width, height int) *Lesson {
	ref, ok := nav.PayloadOf[nav.LessonRef](route)
	return &Lesson{
		client:   c,
		route:    route,
		id:       ref.ID,
		hasRef:   ok,
		loading:  ok,
		spinner:  widgets.NewSpinner(),
		viewport: viewport.New(max(width, 20), max(height-headerLines, 3)),
	}
}

// Init implements screen.Screen
func (s *Lesson) Init() tea.Cmd {
	if !s.hasRef {
		return nil
	}
	route, id := s.route, s.id
	load := func() tea.Msg {
		lesson, err := s.client.Lesson(context.Background(), id)
		return LessonLoadedMsg{Result: screen.Result{Route: route, Err: err}, Lesson: lesson}
	}
	return tea.Batch(load, s.spinner.Tick)
}

// Update implements screen.Screen
func (s *Lesson) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.viewport.Width = max(msg.Width, 20)
		s.viewport.Height = max(msg.Height-headerLines, 3)
		s.setContent()
		return s, nil
	case LessonLoadedMsg:
		s.loading = false
		s.err = msg.Err
		s.lesson = msg.Lesson
		s.setContent()
		return s, nil
	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "t" && s.lesson != nil && s.lesson.HasQuiz {
			return s, screen.Go(nav.ToQuiz(s.lesson.ID, s.lesson.Title))
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *Lesson) setContent() {
	if s.lesson == nil {
		return
	}
	body := lipgloss.NewStyle().Width(s.viewport.Width).Render(s.lesson.Content)
	s.viewport.SetContent(body)
}

// View implements screen.Screen
func (s *Lesson) View() string {
	if !s.hasRef {
		return styles.Subtitle.Render("No lesson selected")
	}
	if s.loading {
		return widgets.Loading(s.spinner, "Loading lesson...")
	}
	if s.err != nil {
		return styles.StatusCritical.Render("Error: " + s.err.Error())
	}

	var sb strings.Builder
	sb.WriteString(styles.CategoryLabel(s.lesson.Category))
	sb.WriteString("  ")
	sb.WriteString(styles.ValueStyle.Render(s.lesson.Title))
	sb.WriteString("\n")

	var meta []string
	if s.lesson.VideoURL != "" {
		meta = append(meta, icons.Video.String()+" "+s.lesson.VideoURL)
	}
	if s.lesson.HasQuiz {
		meta = append(meta, icons.Quiz.String()+" Quiz available, press t")
	}
	sb.WriteString(styles.Subtitle.Render(strings.Join(meta, "   ")))
	sb.WriteString("\n")
	sb.WriteString(s.viewport.View())
	return sb.String()
}

// Help implements screen.Screen
func (s *Lesson) Help() []string {
	help := []string{"↑↓ Scroll"}
	if s.lesson != nil && s.lesson.HasQuiz {
		help = append(help, "t Take quiz")
	}
	return append(help, "b Back", "m Menu")
}

// Capturing implements screen.Screen
func (s *Lesson) Capturing() bool {
	return false
}
