// ABOUTME: File picker for choosing a quiz file to upload
// ABOUTME: Shows recent uploads, a path input, and quiz files found nearby

package filepicker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/tui/quizfiles"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateFolder
)

// FileSelectedMsg is sent when a readable quiz file is chosen
type FileSelectedMsg struct {
	Path      string
	Data      []byte
	Questions []client.QuestionInput
}

// CancelledMsg is sent when the user backs out of the picker
type CancelledMsg struct{}

// FilePicker is the quiz file selection component
type FilePicker struct {
	recentFiles []string
	found       []quizfiles.File
	cursor      int
	state       state
	textInput   textinput.Model
	err         string
	width       int
	height      int
}

// New creates a picker over recent files and discovered quiz files
func New(recentFiles []string, found []quizfiles.File) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "/path/to/quiz.yaml"
	ti.CharLimit = 256
	ti.Width = 60

	return &FilePicker{
		recentFiles: recentFiles,
		found:       found,
		state:       stateList,
		textInput:   ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""

		switch fp.state {
		case stateList:
			return fp.updateList(msg)
		case stateInput:
			return fp.updateInput(msg)
		case stateFolder:
			return fp.updateFolder(msg)
		}
	}

	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < fp.listItemCount()-1 {
			fp.cursor++
		}
	case "enter":
		return fp.selectListItem()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		fp.textInput.Blur()
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.loadFile(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := len(fp.found)

	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < back {
			fp.cursor++
		}
	case "enter":
		if fp.cursor == back {
			fp.state = stateList
			fp.cursor = 0
			return fp, nil
		}
		return fp.loadFile(fp.found[fp.cursor].Path)
	case "esc", "b":
		fp.state = stateList
		fp.cursor = 0
	}
	return fp, nil
}

// listItemCount is the recent files plus "Enter path..." and, when any
// were found, "Browse quiz files..."
func (fp *FilePicker) listItemCount() int {
	count := len(fp.recentFiles) + 1
	if len(fp.found) > 0 {
		count++
	}
	return count
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	recentCount := len(fp.recentFiles)

	switch {
	case fp.cursor < recentCount:
		return fp.loadFile(fp.recentFiles[fp.cursor])
	case fp.cursor == recentCount:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	case len(fp.found) > 0 && fp.cursor == recentCount+1:
		fp.state = stateFolder
		fp.cursor = 0
	}
	return fp, nil
}

// loadFile reads and parses a quiz file. Problems stay in the picker as an
// error line so the admin can pick again.
func (fp *FilePicker) loadFile(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			fp.err = "File not found: " + path
		case os.IsPermission(err):
			fp.err = "Cannot read file: permission denied"
		default:
			fp.err = "Error reading file: " + err.Error()
		}
		return fp, nil
	}

	questions, err := client.ParseQuizFile(data)
	if err != nil {
		fp.err = fmt.Sprintf("%s: %v", filepath.Base(expanded), err)
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expanded, Data: data, Questions: questions}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetError sets an error message to display
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// Typing reports whether the path input has focus
func (fp *FilePicker) Typing() bool {
	return fp.state == stateInput
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	var b strings.Builder

	switch fp.state {
	case stateInput:
		b.WriteString(styles.Title.Render("Enter quiz file path"))
		b.WriteString("\n")
		b.WriteString(fp.textInput.View())
		b.WriteString("\n")
	case stateFolder:
		b.WriteString(styles.Title.Render("Quiz files"))
		b.WriteString("\n")
		for i, f := range fp.found {
			b.WriteString(styles.Row(f.Name, i == fp.cursor) + "\n")
		}
		b.WriteString(styles.Row("[back]", fp.cursor == len(fp.found)) + "\n")
	default:
		fp.viewList(&b)
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusCritical.Render("Error: " + fp.err))
	}
	return b.String()
}

func (fp *FilePicker) viewList(b *strings.Builder) {
	b.WriteString(styles.Title.Render("Select quiz file"))
	b.WriteString("\n")

	if len(fp.recentFiles) > 0 {
		b.WriteString(styles.Subtitle.Render("Recent uploads:"))
		b.WriteString("\n")
		for i, path := range fp.recentFiles {
			b.WriteString(styles.Row(shortenPath(path, fp.width-10), i == fp.cursor) + "\n")
		}
		b.WriteString(styles.Help.Render(strings.Repeat("─", min(40, max(fp.width-4, 1)))))
		b.WriteString("\n")
	}

	idx := len(fp.recentFiles)
	b.WriteString(styles.Row("Enter path...", fp.cursor == idx) + "\n")
	if len(fp.found) > 0 {
		label := fmt.Sprintf("Browse quiz files (%d)...", len(fp.found))
		b.WriteString(styles.Row(label, fp.cursor == idx+1) + "\n")
	}
}

// shortenPath keeps the tail of a long path. Widths under 10 leave it whole.
func shortenPath(path string, width int) string {
	if width < 10 || len(path) <= width {
		return path
	}
	return "..." + path[len(path)-(width-3):]
}
