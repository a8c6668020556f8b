// ABOUTME: Wallet balance and reward history
// ABOUTME: Both reads fall back to zero or empty when the backend is unavailable

package client

import (
	"context"
	"sort"

	"golang.org/x/sync/singleflight"
)

// Balance returns the token balance, or 0 when unavailable. Concurrent
// callers share one request; it runs detached from any one caller's
// cancellation and each caller stops waiting when its own ctx ends.
func (c *Client) Balance(ctx context.Context) int {
	shared := context.WithoutCancel(ctx)
	ch := c.reads.DoChan("balance", func() (any, error) {
		var wire balanceWire
		if err := c.get(shared, "/wallet/balance", &wire); err != nil {
			return 0, err
		}
		return wire.TokenBalance, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: c.handleRequestError(ctx, ctx.Err())}
	}
	if res.Err != nil {
		c.swallow("balance", res.Err)
		return 0
	}
	balance := res.Val.(int)
	if balance < 0 {
		return 0
	}
	return balance
}

// History returns recent wallet movements newest first, or none when
// unavailable
func (c *Client) History(ctx context.Context) []HistoryEntry {
	var wire []historyWire
	if err := c.get(ctx, "/wallet/history", &wire); err != nil {
		c.swallow("history", err)
		return []HistoryEntry{}
	}

	entries := make([]HistoryEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, w.toEntry())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}
