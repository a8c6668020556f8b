// ABOUTME: Contract shared by the root App and every TUI screen
// ABOUTME: Screens ask for navigation through messages and tag results with their route

package screen

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/nav"
)

// Screen is one destination of the app
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	// Help lists footer shortcuts as "key label" pairs
	Help() []string
	// Capturing reports whether the screen wants every key, e.g. while a
	// text field has focus, so global shortcuts stay out of the way
	Capturing() bool
}

// Navigate asks the App to change what is on screen. Exactly one of Route,
// Back, or Reset applies: Back pops history, Reset replaces it.
type Navigate struct {
	Route nav.Route
	Back  bool
	Reset bool
}

// Go returns a command that navigates to a route
func Go(r nav.Route) tea.Cmd {
	return func() tea.Msg { return Navigate{Route: r} }
}

// Back returns a command that returns to the previous screen
func Back() tea.Cmd {
	return func() tea.Msg { return Navigate{Back: true} }
}

// Reset returns a command that jumps to a route and clears history
func Reset(r nav.Route) tea.Cmd {
	return func() tea.Msg { return Navigate{Route: r, Reset: true} }
}

// Routed is implemented by messages that belong to one route
type Routed interface {
	RouteOf() nav.State
}

// Result is embedded in every message that carries a gateway outcome
type Result struct {
	Route nav.State
	Err   error
}

// RouteOf implements Routed
func (r Result) RouteOf() nav.State { return r.Route }

// Failure returns the gateway error, if any
func (r Result) Failure() error { return r.Err }

// Failed is implemented by messages that may carry a gateway error
type Failed interface {
	Failure() error
}

// SignedIn is sent after a successful login or signup
type SignedIn struct{}

// SignOut asks the App to end the session
type SignOut struct{}

// BalanceChanged asks the App to refresh the header balance
type BalanceChanged struct{}

// Emit wraps a message in a command
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
