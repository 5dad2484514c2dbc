package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rickgao/tech-calendar/internal/model"
)

// EarningsCalendar fetches earnings records for one symbol across the
// inclusive [from, to] date window. Transient failures are retried with
// backoff inside the client; a returned error means retries were exhausted
// or the failure was not retryable.
func (c *Client) EarningsCalendar(ctx context.Context, symbol string, from, to time.Time) ([]EarningsItem, error) {
	query := url.Values{}
	query.Set("from", model.FormatDate(from))
	query.Set("to", model.FormatDate(to))
	if symbol != "" {
		query.Set("symbol", symbol)
	}

	var resp EarningsCalendarResponse
	if err := c.get(ctx, "/calendar/earnings", query, &resp); err != nil {
		return nil, fmt.Errorf("get earnings calendar for %s: %w", symbol, err)
	}

	return resp.EarningsCalendar, nil
}
