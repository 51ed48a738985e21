// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

// maxResultFetches caps concurrent results requests for one history call.
const maxResultFetches = 4

// SessionResults pairs a past session with its tally. Results is nil for
// open sessions and for sessions whose results could not be fetched.
type SessionResults struct {
	Session models.Session
	Results tally.Results
}

// HistoryWithResults lists completed sessions for sessionData together with
// their results. Result fetches run concurrently; one failing leaves that
// entry without results instead of failing the call.
func (c *Client) HistoryWithResults(ctx context.Context, sessionData json.RawMessage) ([]SessionResults, error) {
	sessions, err := c.History(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	out := make([]SessionResults, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed() {
			out = append(out, SessionResults{Session: s})
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxResultFetches)
	for i := range out {
		entry := &out[i]
		eg.Go(func() error {
			results, err := c.Results(egCtx, entry.Session.ID)
			if err != nil {
				c.log.Warn("fetch history results failed",
					zap.String("session_id", entry.Session.ID),
					zap.Error(err),
				)
				return nil
			}
			entry.Results = results
			return nil
		})
	}
	_ = eg.Wait()

	return out, nil
}
