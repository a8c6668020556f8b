// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the navigation controller, builds screens per route, and draws the frame

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/config"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/admin"
	"github.com/readsmvp/reads-cli/internal/tui/auth"
	"github.com/readsmvp/reads-cli/internal/tui/dashboard"
	"github.com/readsmvp/reads-cli/internal/tui/debuglog"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/learn"
	"github.com/readsmvp/reads-cli/internal/tui/menu"
	"github.com/readsmvp/reads-cli/internal/tui/profile"
	"github.com/readsmvp/reads-cli/internal/tui/quiz"
	"github.com/readsmvp/reads-cli/internal/tui/quizfiles"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/wallet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NavigateMsg asks the App to change what is on screen. Leaf screens send
// it through screen.Go, screen.Back, and screen.Reset.
type NavigateMsg = screen.Navigate

// Layout constants
const (
	minTerminalWidth = 80 // Frame never draws narrower than this
	panelPadding     = 4  // Horizontal space kept free around content
	frameLines       = 3  // Header, footer, and the gap before the footer
)

// SessionExpiredNotice is shown on the sign-in form after a 401
const SessionExpiredNotice = "Session expired, please sign in again"

// headerLoadedMsg carries the identity and balance shown in the header
type headerLoadedMsg struct {
	profile *client.Profile
	balance int
	err     error
}

// signedOutMsg is sent once the stored session is cleared
type signedOutMsg struct {
	err error
}

var sectionLabels = map[nav.Section]string{
	nav.SectionAuth:      "Sign in",
	nav.SectionDashboard: "Dashboard",
	nav.SectionLearn:     "Learn",
	nav.SectionWallet:    "Wallet",
	nav.SectionProfile:   "Profile",
	nav.SectionAdmin:     "Admin",
}

// App is the root model for the TUI
type App struct {
	client     *client.Client
	ctrl       *nav.Controller
	current    screen.Screen
	menu       *menu.Menu
	profile    *client.Profile
	balance    int
	notice     string
	configDir  string
	quizDir    string
	width      int
	height     int
	lastUpdate time.Time
}

// New creates the app. Signed-in users start on the dashboard, everyone
// else on the sign-in form.
func New(c *client.Client, configDir, quizDir string) *App {
	start := nav.ToSection(nav.SectionAuth)
	if c.IsAuthenticated() {
		start = nav.ToSection(nav.SectionDashboard)
	}

	a := &App{
		client:    c,
		ctrl:      nav.NewController(start),
		configDir: configDir,
		quizDir:   quizDir,
	}
	a.current = a.build(start)
	return a
}

// State returns the current navigation state
func (a *App) State() nav.State {
	return a.ctrl.State()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.client.IsAuthenticated() {
		return tea.Batch(a.current.Init(), a.refreshHeader())
	}
	return a.current.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.current, cmd = a.current.Update(a.contentSize())
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case NavigateMsg:
		return a, a.navigate(msg)

	case menu.ClosedMsg:
		a.menu = nil
		return a, nil

	case screen.SignedIn:
		a.notice = ""
		return a, a.refreshHeader()

	case screen.BalanceChanged:
		return a, a.refreshHeader()

	case screen.SignOut:
		a.menu = nil
		return a, a.signOut()

	case signedOutMsg:
		debuglog.Error("sign out", msg.err)
		a.profile = nil
		a.balance = 0
		return a, a.reset(nav.ToSection(nav.SectionAuth))

	case headerLoadedMsg:
		return a, a.applyHeader(msg)
	}

	// A result for a route the user already left is ignored
	if routed, ok := msg.(screen.Routed); ok && routed.RouteOf() != a.ctrl.State() {
		debuglog.L().Debug("dropping stale result",
			zap.Stringer("for", routed.RouteOf()),
			zap.Stringer("current", a.ctrl.State()))
		return a, nil
	}
	if failed, ok := msg.(screen.Failed); ok && client.IsSessionInvalid(failed.Failure()) {
		return a, a.expireSession()
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.menu != nil {
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	}

	if !a.current.Capturing() {
		section := a.ctrl.State().Section
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "m":
			if section != nav.SectionAuth {
				a.menu = menu.New(a.isAdmin(), section)
				return a, nil
			}
		case "esc", "b":
			if a.ctrl.CanGoBack() {
				return a, a.navigate(NavigateMsg{Back: true})
			}
		}
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

// navigate applies a navigation request and enters the resulting route
func (a *App) navigate(msg NavigateMsg) tea.Cmd {
	switch {
	case msg.Back:
		if !a.ctrl.Back() {
			return nil
		}
	case msg.Reset:
		a.ctrl.Reset(msg.Route)
	default:
		a.ctrl.Go(msg.Route)
	}
	return a.enter()
}

// reset jumps to a route and forgets history
func (a *App) reset(r nav.Route) tea.Cmd {
	return a.navigate(NavigateMsg{Route: r, Reset: true})
}

// enter applies the route guards and builds the screen for the current state
func (a *App) enter() tea.Cmd {
	state := a.ctrl.State()
	switch {
	case state.Section != nav.SectionAuth && !a.client.IsAuthenticated():
		a.ctrl.Reset(nav.ToSection(nav.SectionAuth))
	case state.Section == nav.SectionAdmin && a.profile != nil && !a.profile.IsAdmin:
		a.ctrl.Reset(nav.ToSection(nav.SectionDashboard))
	}

	state = a.ctrl.State()
	debuglog.L().Debug("navigate", zap.Stringer("to", state))

	a.menu = nil
	a.current = a.build(state)
	if a.width > 0 {
		a.current, _ = a.current.Update(a.contentSize())
	}

	cmds := []tea.Cmd{a.current.Init()}
	if state.Section == nav.SectionDashboard || state.Section == nav.SectionWallet {
		cmds = append(cmds, a.refreshHeader())
	}
	return tea.Batch(cmds...)
}

// build constructs the screen for a state
func (a *App) build(state nav.State) screen.Screen {
	w, h := a.contentWidth(), a.contentHeight()

	switch state.Section {
	case nav.SectionAuth:
		notice := a.notice
		a.notice = ""
		return auth.New(a.client, state, notice)
	case nav.SectionLearn:
		switch state.SubView {
		case nav.ViewLessonList:
			return learn.NewLessons(a.client, state)
		case nav.ViewLesson:
			return learn.NewLesson(a.client, state, w, h)
		case nav.ViewQuiz:
			return quiz.New(a.client, state, w)
		default:
			return learn.NewCategories(a.client)
		}
	case nav.SectionWallet:
		return wallet.New(a.client, w)
	case nav.SectionProfile:
		return profile.New(a.client)
	case nav.SectionAdmin:
		return admin.New(a.client, a.configDir, a.quizDir, w)
	default:
		return dashboard.New(a.client, w, h)
	}
}

func (a *App) expireSession() tea.Cmd {
	a.profile = nil
	a.balance = 0
	a.notice = SessionExpiredNotice
	return a.reset(nav.ToSection(nav.SectionAuth))
}

func (a *App) isAdmin() bool {
	return a.profile != nil && a.profile.IsAdmin
}

// refreshHeader loads the profile and balance together
func (a *App) refreshHeader() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		var msg headerLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			p, err := c.Profile(ctx)
			msg.profile = p
			return err
		})
		g.Go(func() error {
			msg.balance = c.Balance(ctx)
			return nil
		})
		msg.err = g.Wait()
		return msg
	}
}

func (a *App) applyHeader(msg headerLoadedMsg) tea.Cmd {
	if msg.err != nil {
		if client.IsSessionInvalid(msg.err) {
			return a.expireSession()
		}
		debuglog.Error("load header", msg.err)
		return nil
	}

	a.profile = msg.profile
	a.balance = msg.balance
	a.lastUpdate = time.Now()

	// The role is only known now, so re-check the admin guard
	if a.ctrl.State().Section == nav.SectionAdmin && !a.profile.IsAdmin {
		return a.reset(nav.ToSection(nav.SectionDashboard))
	}
	return nil
}

func (a *App) signOut() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		return signedOutMsg{err: c.Logout(context.Background())}
	}
}

// View implements tea.Model
func (a *App) View() string {
	content := a.current.View()
	if a.menu != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, a.menu.View(), "  ", content)
	}
	return a.wrapWithFrame(content)
}

// contentSize is the window size screens see inside the frame
func (a *App) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()}
}

func (a *App) contentWidth() int {
	if a.width == 0 {
		return 0
	}
	return max(a.width-panelPadding, 20)
}

func (a *App) contentHeight() int {
	if a.height == 0 {
		return 0
	}
	return max(a.height-frameLines, 5)
}

// frameWidth leaves one column free to prevent wrapping on some terminals,
// clamped to the minimum width
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	state := a.ctrl.State()
	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("$READS"))
	if label := sectionLabels[state.Section]; label != "" {
		leftText += contextStyle.Render(label) + " "
	}

	rightText := ""
	if a.profile != nil && state.Section != nav.SectionAuth {
		rightText = " " + a.profile.Name + "  " +
			styles.TokenStyle.Render(fmt.Sprintf("%s %d $READS", icons.Token.String(), a.balance)) + " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.current.Help()
	if a.menu != nil {
		shortcuts = a.menu.Help()
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.ctrl.State().Section != nav.SectionAuth {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		// Too many shortcuts; drop the status before overflowing
		rightText = ""
		fillWidth = max(width-4-lipgloss.Width(leftPlainText), 0)
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI with a client built from cfg
func Run(cfg *config.Config) error {
	log, err := debuglog.Init(cfg.ConfigDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	defer debuglog.Close()

	c := client.New(cfg.APIURL,
		client.WithTokenStore(cfg.TokenStore()),
		client.WithLogger(log),
	)

	cwd, _ := os.Getwd()
	app := New(c, cfg.ConfigDir, quizfiles.FindDir(cwd))

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
