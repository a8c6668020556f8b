// ABOUTME: Category index screen of the learn section
// ABOUTME: Shows each category with its color swatch and lesson count

package learn

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// CategoriesLoadedMsg carries the category index
type CategoriesLoadedMsg struct {
	screen.Result
	Categories []client.Category
}

// Categories lists lesson categories
type Categories struct {
	client     *client.Client
	route      nav.State
	categories []client.Category
	loading    bool
	cursor     int
	spinner    spinner.Model
}

// NewCategories creates the category index
func NewCategories(c *client.Client) *Categories {
	return &Categories{
		client:  c,
		route:   nav.ToCategories(),
		loading: true,
		spinner: widgets.NewSpinner(),
	}
}

// Init implements screen.Screen
func (s *Categories) Init() tea.Cmd {
	route := s.route
	load := func() tea.Msg {
		return CategoriesLoadedMsg{
			Result:     screen.Result{Route: route},
			Categories: s.client.Categories(context.Background()),
		}
	}
	return tea.Batch(load, s.spinner.Tick)
}

// Update implements screen.Screen
func (s *Categories) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case CategoriesLoadedMsg:
		s.loading = false
		s.categories = msg.Categories
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
			if s.cursor < len(s.categories)-1 {
				s.cursor++
			}
		case "enter":
			if len(s.categories) > 0 {
				return s, screen.Go(nav.ToLessonList(s.categories[s.cursor].Name))
			}
		}
	}
	return s, nil
}

// View implements screen.Screen
func (s *Categories) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Categories"))
	sb.WriteString("\n")

	if s.loading {
		sb.WriteString(widgets.Loading(s.spinner, "Loading categories..."))
		return sb.String()
	}
	if len(s.categories) == 0 {
		sb.WriteString(styles.Subtitle.Render("No categories yet"))
		return sb.String()
	}

	for i, c := range s.categories {
		label := fmt.Sprintf("%-14s %d lessons", c.Name, c.Count)
		sb.WriteString(styles.Cursor(i == s.cursor))
		sb.WriteString(styles.Swatch(c.Name))
		sb.WriteString(" ")
		if i == s.cursor {
			sb.WriteString(styles.Selected.Render(label))
		} else {
			sb.WriteString(styles.Normal.Render(label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Help implements screen.Screen
func (s *Categories) Help() []string {
	return []string{"↑↓ Navigate", "Enter Open", "b Back", "m Menu"}
}

// Capturing implements screen.Screen
func (s *Categories) Capturing() bool {
	return false
}
