// ABOUTME: Admin screen with user, lesson, and quiz management tabs
// ABOUTME: Tab and quiz-editor state live in nav.AdminState; every failure is shown, never defaulted

package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/filepicker"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/quizfiles"
	"github.com/readsmvp/reads-cli/internal/tui/recentfiles"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// UsersLoadedMsg carries every account
type UsersLoadedMsg struct {
	screen.Result
	Users []client.Profile
}

// LessonsLoadedMsg carries every lesson across categories
type LessonsLoadedMsg struct {
	screen.Result
	Lessons []client.LessonSummary
}

// ActionDoneMsg reports a finished admin mutation
type ActionDoneMsg struct {
	screen.Result
	Notice string
	// Uploaded is the quiz file an upload was read from
	Uploaded string
}

// confirmation is a destructive action waiting for y
type confirmation struct {
	prompt string
	run    func() tea.Cmd
}

var tabLabels = map[nav.AdminTab]string{
	nav.AdminUsers:   "Users",
	nav.AdminLessons: "Lessons",
	nav.AdminManage:  "Quizzes",
}

// Admin is the privileged management screen
type Admin struct {
	client  *client.Client
	route   nav.State
	state   nav.AdminState
	spinner spinner.Model
	width   int

	users         []client.Profile
	lessons       []client.LessonSummary
	usersLoaded   bool
	lessonsLoaded bool
	cursor        int
	loading       bool
	busy          bool
	err           error
	notice        string

	confirm *confirmation
	form    *huh.Form
	draft   lessonDraft
	picker  *filepicker.FilePicker
	recent  *recentfiles.RecentFiles
	quizDir string
}

// New creates the admin screen. Recent uploads are remembered in configDir
// and quiz files are offered from quizDir.
func New(c *client.Client, configDir, quizDir string, width int) *Admin {
	return &Admin{
		client:  c,
		route:   nav.ToSection(nav.SectionAdmin),
		state:   nav.NewAdminState(),
		spinner: widgets.NewSpinner(),
		width:   width,
		recent:  recentfiles.New(configDir),
		quizDir: quizDir,
	}
}

// State returns the admin sub-navigation
func (a *Admin) State() nav.AdminState {
	return a.state
}

// Init implements screen.Screen
func (a *Admin) Init() tea.Cmd {
	return a.loadTab()
}

func (a *Admin) loadTab() tea.Cmd {
	a.loading = true
	route := a.route

	var load tea.Cmd
	if a.state.Tab == nav.AdminUsers {
		load = func() tea.Msg {
			users, err := a.client.Users(context.Background())
			return UsersLoadedMsg{Result: screen.Result{Route: route, Err: err}, Users: users}
		}
	} else {
		load = func() tea.Msg {
			lessons, err := a.client.AllLessons(context.Background())
			return LessonsLoadedMsg{Result: screen.Result{Route: route, Err: err}, Lessons: lessons}
		}
	}
	return tea.Batch(load, a.spinner.Tick)
}

// run performs a mutation off the update loop
func (a *Admin) run(op func(context.Context) (string, error), uploaded string) tea.Cmd {
	a.busy = true
	a.err = nil
	a.notice = ""
	route := a.route

	do := func() tea.Msg {
		notice, err := op(context.Background())
		return ActionDoneMsg{
			Result:   screen.Result{Route: route, Err: err},
			Notice:   notice,
			Uploaded: uploaded,
		}
	}
	return tea.Batch(do, a.spinner.Tick)
}

// Update implements screen.Screen
func (a *Admin) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		if a.picker != nil {
			a.picker.Update(msg)
		}
		return a, nil

	case UsersLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.users = msg.Users
		a.usersLoaded = true
		a.clampCursor()
		return a, nil

	case LessonsLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.lessons = msg.Lessons
		a.lessonsLoaded = true
		a.clampCursor()
		return a, nil

	case ActionDoneMsg:
		return a, a.finish(msg)

	case filepicker.FileSelectedMsg:
		return a, a.upload(msg)

	case filepicker.CancelledMsg:
		a.closePicker()
		return a, nil

	case spinner.TickMsg:
		if a.loading || a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blinks and other internal messages belong to whatever is open
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.picker != nil {
		_, cmd := a.picker.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *Admin) finish(msg ActionDoneMsg) tea.Cmd {
	a.busy = false
	if msg.Err != nil {
		if a.picker != nil {
			a.picker.SetError(msg.Err.Error())
		} else {
			a.err = msg.Err
		}
		return nil
	}

	a.notice = msg.Notice
	if msg.Uploaded != "" {
		a.recent.Add(msg.Uploaded)
		a.closePicker()
	}
	return a.loadTab()
}

func (a *Admin) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if a.busy {
		return a, nil
	}

	if a.confirm != nil {
		c := a.confirm
		a.confirm = nil
		if msg.String() == "y" {
			return a, c.run()
		}
		a.notice = "Cancelled"
		return a, nil
	}

	if a.form != nil {
		if msg.String() == "esc" {
			a.form = nil
			return a, nil
		}
		return a.updateForm(msg)
	}

	if a.picker != nil {
		_, cmd := a.picker.Update(msg)
		return a, cmd
	}

	switch key := msg.String(); key {
	case "tab":
		return a, a.switchTo(a.state.NextTab())
	case "1", "2", "3":
		tab := nav.AdminTabs[int(key[0]-'1')]
		return a, a.switchTo(a.state.SwitchTab(tab))
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < a.rowCount()-1 {
			a.cursor++
		}
		return a, nil
	case "r":
		a.err = nil
		return a, a.loadTab()
	}

	if a.loading {
		return a, nil
	}

	switch a.state.Tab {
	case nav.AdminUsers:
		return a, a.userKey(msg.String())
	case nav.AdminLessons:
		return a, a.lessonKey(msg.String())
	case nav.AdminManage:
		return a, a.quizKey(msg.String())
	}
	return a, nil
}

func (a *Admin) switchTo(next nav.AdminState) tea.Cmd {
	if next.Tab == a.state.Tab {
		return nil
	}
	a.state = next
	a.cursor = 0
	a.err = nil
	a.notice = ""

	loaded := a.lessonsLoaded
	if next.Tab == nav.AdminUsers {
		loaded = a.usersLoaded
	}
	if !loaded {
		return a.loadTab()
	}
	return nil
}

func (a *Admin) rowCount() int {
	if a.state.Tab == nav.AdminUsers {
		return len(a.users)
	}
	return len(a.lessons)
}

func (a *Admin) clampCursor() {
	a.cursor = min(a.cursor, max(a.rowCount()-1, 0))
}

func (a *Admin) selectedLesson() (client.LessonSummary, bool) {
	if a.cursor >= len(a.lessons) {
		return client.LessonSummary{}, false
	}
	return a.lessons[a.cursor], true
}

func (a *Admin) userKey(key string) tea.Cmd {
	if key != "p" && key != "d" {
		return nil
	}
	if a.cursor >= len(a.users) {
		return nil
	}
	u := a.users[a.cursor]
	promote := key == "p"
	return a.run(func(ctx context.Context) (string, error) {
		return a.client.SetAdmin(ctx, u.ID, promote)
	}, "")
}

func (a *Admin) lessonKey(key string) tea.Cmd {
	switch key {
	case "n":
		a.form = a.lessonForm()
		return a.form.Init()
	case "x":
		l, ok := a.selectedLesson()
		if !ok {
			return nil
		}
		a.confirm = &confirmation{
			prompt: fmt.Sprintf("Delete lesson %q with its quiz and rewards?", l.Title),
			run: func() tea.Cmd {
				return a.run(func(ctx context.Context) (string, error) {
					return "Deleted lesson " + l.Title, a.client.DeleteLesson(ctx, l.ID)
				}, "")
			},
		}
	}
	return nil
}

func (a *Admin) quizKey(key string) tea.Cmd {
	l, ok := a.selectedLesson()
	if !ok {
		return nil
	}
	switch key {
	case "enter", "u":
		return a.openPicker(l)
	case "x":
		if !l.HasQuiz {
			a.notice = l.Title + " has no quiz"
			return nil
		}
		a.confirm = &confirmation{
			prompt: fmt.Sprintf("Delete every question on %q?", l.Title),
			run: func() tea.Cmd {
				return a.run(func(ctx context.Context) (string, error) {
					return "Deleted quiz for " + l.Title, a.client.DeleteQuiz(ctx, l.ID)
				}, "")
			},
		}
	}
	return nil
}

func (a *Admin) openPicker(l client.LessonSummary) tea.Cmd {
	found, _ := quizfiles.Discover(a.quizDir)
	a.state = a.state.OpenQuizForm(l.ID)
	a.picker = filepicker.New(a.recent.List(), found)
	a.picker.Update(tea.WindowSizeMsg{Width: a.width})
	a.notice = ""
	return a.picker.Init()
}

func (a *Admin) closePicker() {
	a.picker = nil
	a.state = a.state.BackToList()
}

func (a *Admin) upload(msg filepicker.FileSelectedMsg) tea.Cmd {
	lessonID, ok := a.state.EditingLesson()
	if !ok {
		a.closePicker()
		return nil
	}
	questions := msg.Questions
	return a.run(func(ctx context.Context) (string, error) {
		return a.client.CreateQuiz(ctx, client.QuizUpload{LessonID: lessonID, Questions: questions})
	}, msg.Path)
}

// View implements screen.Screen
func (a *Admin) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Admin.String() + " Admin"))
	sb.WriteString("\n")
	sb.WriteString(a.renderTabs())
	sb.WriteString("\n\n")

	if a.picker != nil {
		if ref, ok := a.state.EditingLesson(); ok {
			sb.WriteString(styles.Subtitle.Render(icons.Upload.String() + " Upload quiz for " + a.lessonTitle(ref)))
			sb.WriteString("\n")
		}
		if a.busy {
			sb.WriteString(widgets.Loading(a.spinner, "Uploading quiz..."))
			return sb.String()
		}
		sb.WriteString(a.picker.View())
		return sb.String()
	}
	if a.form != nil {
		sb.WriteString(a.form.View())
		return sb.String()
	}

	if a.confirm != nil {
		sb.WriteString(styles.StatusWarning.Render(icons.Delete.String() + " " + a.confirm.prompt + " (y/n)"))
		sb.WriteString("\n\n")
	}
	if a.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + a.err.Error()))
		sb.WriteString("\n\n")
	}
	if a.notice != "" {
		sb.WriteString(styles.StatusOK.Render(a.notice))
		sb.WriteString("\n\n")
	}

	if a.loading || a.busy {
		sb.WriteString(widgets.Loading(a.spinner, "Working..."))
		return sb.String()
	}

	switch a.state.Tab {
	case nav.AdminUsers:
		a.viewUsers(&sb)
	default:
		a.viewLessons(&sb)
	}
	return sb.String()
}

func (a *Admin) renderTabs() string {
	tabs := make([]string, 0, len(nav.AdminTabs))
	for i, t := range nav.AdminTabs {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[t])
		if t == a.state.Tab {
			tabs = append(tabs, styles.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.Normal.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

func (a *Admin) viewUsers(sb *strings.Builder) {
	if a.err != nil && !a.usersLoaded {
		return
	}
	if len(a.users) == 0 {
		sb.WriteString(styles.Subtitle.Render("No users"))
		return
	}
	for i, u := range a.users {
		line := fmt.Sprintf("%-24s %-30s %s", truncate(u.Name, 24), truncate(u.Email, 30), widgets.RoleBadge(u.IsAdmin))
		sb.WriteString(styles.Row(line, i == a.cursor))
		sb.WriteString("\n")
	}
}

func (a *Admin) viewLessons(sb *strings.Builder) {
	if a.err != nil && !a.lessonsLoaded {
		return
	}
	if len(a.lessons) == 0 {
		sb.WriteString(styles.Subtitle.Render("No lessons yet"))
		return
	}
	for i, l := range a.lessons {
		line := fmt.Sprintf("%-14s %2d. %s", truncate(l.Category, 14), l.OrderIndex, l.Title)
		if a.state.Tab == nav.AdminManage {
			status := widgets.Badge("NO QUIZ", widgets.StatusNeutral)
			if l.HasQuiz {
				status = widgets.Badge("QUIZ", widgets.StatusOK)
			}
			line = status + " " + line
		}
		sb.WriteString(styles.Row(line, i == a.cursor))
		sb.WriteString("\n")
	}
}

func (a *Admin) lessonTitle(id string) string {
	for _, l := range a.lessons {
		if l.ID == id {
			return l.Title
		}
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Help implements screen.Screen
func (a *Admin) Help() []string {
	switch {
	case a.confirm != nil:
		return []string{"y Confirm", "any key Cancel"}
	case a.form != nil:
		return []string{"Tab Next", "Enter Submit", "Esc Cancel"}
	case a.picker != nil:
		return []string{"↑↓ Navigate", "Enter Select", "Esc Cancel"}
	}

	help := []string{"Tab Switch", "↑↓ Navigate"}
	switch a.state.Tab {
	case nav.AdminUsers:
		help = append(help, "p Promote", "d Demote")
	case nav.AdminLessons:
		help = append(help, "n New", "x Delete")
	case nav.AdminManage:
		help = append(help, "Enter Upload", "x Delete quiz")
	}
	return append(help, "r Refresh", "m Menu")
}

// Capturing implements screen.Screen
func (a *Admin) Capturing() bool {
	return a.confirm != nil || a.form != nil || a.picker != nil
}
