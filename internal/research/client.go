package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/rickgao/tech-calendar/internal/model"
)

const defaultHost = "http://localhost:11434"

const systemPrompt = "You are a meticulous researcher that only returns structured data. " +
	"Never speculate beyond public information, avoid hallucinating dates, and prefer authoritative sources."

// Client queries a local Ollama model for structured series occurrences.
type Client struct {
	model  string
	logger *slog.Logger

	maxRetries   int
	retryBackoff time.Duration

	// chat issues one request; swapped out in tests.
	chat func(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error

	// today feeds the prompt's reference date; overridable in tests.
	today func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a research client for the given model. host may be
// empty, in which case OLLAMA_HOST or the local default is used.
func NewClient(modelName, host string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = defaultHost
	}
	base, err := url.Parse(strings.TrimSuffix(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}

	ollama := api.NewClient(base, &http.Client{Timeout: timeout})
	c := &Client{
		model:        modelName,
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
		chat:         ollama.Chat,
		today:        func() time.Time { return model.TruncateToDate(time.Now()) },
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// Lookup queries the model for one series and target year, retrying
// transient failures and malformed answers a bounded number of times.
func (c *Client) Lookup(ctx context.Context, series model.Series, year int) (Lookup, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying research lookup",
				"attempt", attempt,
				"backoff", jitter,
				"series_id", series.ID,
				"year", year,
			)

			select {
			case <-ctx.Done():
				return Lookup{}, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		lookup, err := c.lookupOnce(ctx, series, year)
		if err == nil {
			return lookup, nil
		}
		lastErr = err
	}

	return Lookup{}, fmt.Errorf("research lookup for %s %d: max retries exceeded: %w", series.ID, year, lastErr)
}

func (c *Client) lookupOnce(ctx context.Context, series model.Series, year int) (Lookup, error) {
	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(series, year, c.today())},
		},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
		Options: map[string]any{
			"temperature": 0,
		},
	}

	var answer strings.Builder
	err := c.chat(ctx, req, func(resp api.ChatResponse) error {
		answer.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return Lookup{}, fmt.Errorf("chat request: %w", err)
	}

	lookup, err := parseLookup(answer.String())
	if err != nil {
		return Lookup{}, err
	}
	if lookup.Year != year {
		return Lookup{}, &model.ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("answer is for %d, expected %d", lookup.Year, year),
		}
	}
	return lookup, nil
}

func buildPrompt(series model.Series, year int, today time.Time) string {
	var b strings.Builder
	b.WriteString("You aggregate structured information about annually recurring technology events.\n")
	b.WriteString("Consult what you know from multiple independent public sources and prefer authoritative announcements.\n")
	fmt.Fprintf(&b, "Today is %s.\n", model.FormatDate(today))
	fmt.Fprintf(&b, "Series name: %s\n", series.Name)
	fmt.Fprintf(&b, "Series id: %s\n", series.ID)
	fmt.Fprintf(&b, "Target year: %d\n", year)
	fmt.Fprintf(&b, "Search queries to consider: %s\n", strings.Join(series.Queries, "; "))
	b.WriteString("Answer with a single JSON object holding these fields:\n")
	b.WriteString("- year (integer)\n")
	b.WriteString("- start_date (YYYY-MM-DD or null if not announced)\n")
	b.WriteString("- end_date (YYYY-MM-DD or null if not announced)\n")
	b.WriteString("- location (city or venue, optional)\n")
	b.WriteString("- timezone (IANA TZ, optional)\n")
	b.WriteString("- confident (true if multiple independent sources agree)\n")
	b.WriteString("- confirmed (true if an official announcement exists)\n")
	b.WriteString("- announcement_url (URL of the announcement if available)\n")
	b.WriteString("If no dates are known yet, set start_date and end_date to null but keep other fields if available.")
	return b.String()
}
