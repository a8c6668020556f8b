// ABOUTME: Profile and progress stats for the signed-in user
// ABOUTME: A rejected profile fetch clears the stored session

package client

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// sessionRejectStatuses are profile responses that mean the token is no good
var sessionRejectStatuses = map[int]bool{
	http.StatusUnauthorized: true,
	http.StatusForbidden:    true,
	http.StatusNotFound:     true,
}

// Profile fetches the signed-in user. When the backend rejects the
// credential the token is cleared and a session-invalid error returned.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var wire profileWire
	if err := c.get(ctx, "/profile", &wire); err != nil {
		return nil, c.checkSession(err)
	}
	p := wire.toProfile()
	return &p, nil
}

func (c *Client) checkSession(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) || !sessionRejectStatuses[apiErr.Status] {
		return err
	}
	if clearErr := c.store.Clear(); clearErr != nil {
		c.logger.Warn("failed to clear rejected session", zap.Error(clearErr))
	}
	return &Error{
		Kind:    KindSessionInvalid,
		Status:  apiErr.Status,
		Message: "session expired or invalid, please sign in again",
		Err:     apiErr,
	}
}

// Stats returns progress counts, or zero counts when unavailable
func (c *Client) Stats(ctx context.Context) Stats {
	var stats Stats
	if err := c.get(ctx, "/profile/stats", &stats); err != nil {
		c.swallow("stats", err)
		return Stats{}
	}
	return stats
}
