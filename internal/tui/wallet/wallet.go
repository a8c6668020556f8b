// ABOUTME: Wallet screen with the token balance and reward history
// ABOUTME: Plots the running total of history amounts as a sparkline

package wallet

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
	"golang.org/x/sync/errgroup"
)

// LoadedMsg carries balance and history together
type LoadedMsg struct {
	screen.Result
	Balance int
	History []client.HistoryEntry
}

// visibleRows caps how many history rows are listed
const visibleRows = 10

// Wallet shows the balance and recent movements
type Wallet struct {
	client  *client.Client
	route   nav.State
	balance int
	history []client.HistoryEntry
	loading bool
	spinner spinner.Model
	width   int
}

// New creates the wallet screen
func New(c *client.Client, width int) *Wallet {
	return &Wallet{
		client:  c,
		route:   nav.ToSection(nav.SectionWallet),
		loading: true,
		spinner: widgets.NewSpinner(),
		width:   width,
	}
}

// Init implements screen.Screen
func (w *Wallet) Init() tea.Cmd {
	return tea.Batch(w.load(), w.spinner.Tick)
}

func (w *Wallet) load() tea.Cmd {
	route := w.route
	return func() tea.Msg {
		msg := LoadedMsg{Result: screen.Result{Route: route}}
		var g errgroup.Group
		g.Go(func() error {
			msg.Balance = w.client.Balance(context.Background())
			return nil
		})
		g.Go(func() error {
			msg.History = w.client.History(context.Background())
			return nil
		})
		g.Wait()
		return msg
	}
}

// Update implements screen.Screen
func (w *Wallet) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case LoadedMsg:
		w.loading = false
		w.balance = msg.Balance
		w.history = msg.History
	case spinner.TickMsg:
		if w.loading {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}
	case tea.KeyMsg:
		if msg.String() == "r" && !w.loading {
			w.loading = true
			return w, tea.Batch(w.load(), w.spinner.Tick)
		}
	}
	return w, nil
}

// Trend returns the running balance implied by the history, oldest first
func Trend(history []client.HistoryEntry) []float64 {
	amounts := make([]int, len(history))
	for i, e := range history {
		// history is newest first
		amounts[len(history)-1-i] = e.Amount
	}
	return widgets.RunningTotal(amounts)
}

// View implements screen.Screen
func (w *Wallet) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Wallet.String() + " Wallet"))
	sb.WriteString("\n")

	if w.loading {
		sb.WriteString(widgets.Loading(w.spinner, "Loading wallet..."))
		return sb.String()
	}

	config := widgets.DefaultMetricBlockConfig()
	config.Width = 30
	config.TitleColor = styles.Token
	sb.WriteString(widgets.MetricBlockWithSparkline(
		icons.Token, "Balance",
		fmt.Sprintf("%d $READS", w.balance),
		Trend(w.history),
		fmt.Sprintf("%d movements", len(w.history)),
		config,
	))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Recent activity"))
	sb.WriteString("\n")
	if len(w.history) == 0 {
		sb.WriteString(styles.Normal.Render("No transactions yet. Pass a quiz to earn $READS."))
		return sb.String()
	}

	for i, e := range w.history {
		if i == visibleRows {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("… %d more", len(w.history)-visibleRows)))
			break
		}
		date := "-"
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}
		sb.WriteString(fmt.Sprintf("%s  %-10s %s\n", styles.Normal.Render(date), widgets.AmountBadge(e.Amount), e.Title))
	}
	return sb.String()
}

// Help implements screen.Screen
func (w *Wallet) Help() []string {
	return []string{"r Refresh", "b Back", "m Menu", "q Quit"}
}

// Capturing implements screen.Screen
func (w *Wallet) Capturing() bool {
	return false
}
