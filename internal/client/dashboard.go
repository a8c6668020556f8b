// ABOUTME: Dashboard summary combining profile, progress, and balance
// ABOUTME: Fetches the three reads concurrently; only the profile can fail

package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary is what the dashboard shows
type Summary struct {
	Profile Profile `json:"profile" yaml:"profile"`
	Stats   Stats   `json:"stats" yaml:"stats"`
	Balance int     `json:"balance" yaml:"balance"`
}

// Dashboard loads the summary. Stats and balance fall back to zero; a
// profile failure fails the whole summary, including session-invalid.
func (c *Client) Dashboard(ctx context.Context) (*Summary, error) {
	var sum Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.Profile(gctx)
		if err != nil {
			return err
		}
		sum.Profile = *p
		return nil
	})
	g.Go(func() error {
		sum.Stats = c.Stats(gctx)
		return nil
	})
	g.Go(func() error {
		sum.Balance = c.Balance(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sum, nil
}
