// ABOUTME: Wallet commands for the token balance and reward history
// ABOUTME: Both fall back to zero or empty output when the backend is down

package cmd

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show your $READS tokens",
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your token balance",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runBalance(ctx, os.Stdout)
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show rewards, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runHistory(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(balanceCmd, historyCmd)
}

type balanceView struct {
	Balance int `json:"balance" yaml:"balance"`
}

// runBalance prints the balance and returns exit code
func runBalance(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	v := balanceView{Balance: s.client.Balance(ctx)}
	return s.print(format.Record(v, [2]string{"Balance", strconv.Itoa(v.Balance) + " $READS"}))
}

// runHistory prints reward history and returns exit code
func runHistory(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	return s.print(formatHistory(s.client.History(ctx)))
}

func formatHistory(entries []client.HistoryEntry) *format.Table {
	t := &format.Table{
		Headers: []string{"Date", "Lesson", "Amount", "Kind"},
		Data:    entries,
		Empty:   "No rewards yet. Pass a quiz to earn $READS.",
	}
	for _, e := range entries {
		date := "-"
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}
		amount := strconv.Itoa(e.Amount)
		if e.Amount > 0 {
			amount = "+" + amount
		}
		t.Rows = append(t.Rows, []string{date, e.Title, amount, e.Kind})
	}
	return t
}
