// ABOUTME: Loading spinner shared by screens that wait on the backend
// ABOUTME: Wraps the bubbles spinner in the app palette

package widgets

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewSpinner returns a dot spinner in the brand color
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))),
	)
}

// Loading renders a spinner frame followed by a label
func Loading(s spinner.Model, label string) string {
	return s.View() + " " + label
}
