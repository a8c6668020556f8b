// ABOUTME: Section menu opened over the current screen with the m key
// ABOUTME: Lists the sections the signed-in user may open, plus sign out

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
)

// ClosedMsg is sent when the menu is dismissed without a choice
type ClosedMsg struct{}

type option struct {
	label   string
	icon    icons.Icon
	section nav.Section
}

// Menu is the section switcher
type Menu struct {
	options []option
	cursor  int
}

var labels = map[nav.Section]option{
	nav.SectionDashboard: {label: "Dashboard", icon: icons.Dashboard},
	nav.SectionLearn:     {label: "Learn", icon: icons.Learn},
	nav.SectionWallet:    {label: "Wallet", icon: icons.Wallet},
	nav.SectionProfile:   {label: "Profile", icon: icons.Profile},
	nav.SectionAdmin:     {label: "Admin", icon: icons.Admin},
	nav.SectionAuth:      {label: "Sign out", icon: icons.SignIn},
}

// New builds the menu. The admin entry appears only for admins, and the
// cursor starts on the current section.
func New(isAdmin bool, current nav.Section) *Menu {
	m := &Menu{}
	for _, s := range nav.Sections {
		if s == nav.SectionAdmin && !isAdmin {
			continue
		}
		opt := labels[s]
		opt.section = s
		if s == current {
			m.cursor = len(m.options)
		}
		m.options = append(m.options, opt)
	}
	return m
}

// Init implements screen.Screen
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements screen.Screen
func (m *Menu) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.choose()
	case "esc", "m", "b":
		return m, screen.Emit(ClosedMsg{})
	}
	return m, nil
}

func (m *Menu) choose() tea.Cmd {
	s := m.options[m.cursor].section
	if s == nav.SectionAuth {
		return screen.Emit(screen.SignOut{})
	}
	return screen.Go(nav.ToSection(s))
}

// Selected returns the section under the cursor
func (m *Menu) Selected() nav.Section {
	return m.options[m.cursor].section
}

// View implements screen.Screen
func (m *Menu) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Go to"))
	sb.WriteString("\n")
	for i, opt := range m.options {
		sb.WriteString(styles.Row(opt.icon.String()+" "+opt.label, i == m.cursor))
		sb.WriteString("\n")
	}
	return styles.ActivePanel.Render(sb.String())
}

// Help implements screen.Screen
func (m *Menu) Help() []string {
	return []string{"↑↓ Navigate", "Enter Open", "Esc Close"}
}

// Capturing implements screen.Screen
func (m *Menu) Capturing() bool {
	return true
}
