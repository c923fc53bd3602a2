// Package gateway consumes the MIDAS gateway HTTP API.
package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"midas/internal/snapshot"
)

// Client fetches ticker snapshots from the gateway. One Run call is one GET;
// there is no retry, no queuing, and no cancellation of requests already on
// the wire; a failed fetch is reported once and the user resubmits.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a gateway client. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Run fetches the snapshot for a symbol via GET /api/run?ticker=SYM.
// Transport failure and non-2xx status are reported uniformly as an error.
func (c *Client) Run(ctx context.Context, symbol string) (*snapshot.Snapshot, error) {
	u := fmt.Sprintf("%s/api/run?ticker=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	snap, err := snapshot.Parse(body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("snapshot fetched", "symbol", symbol,
		"elapsed_ms", time.Since(start).Milliseconds())
	return snap, nil
}

// Health probes GET /healthz. Used once at startup, before the panel takes
// over the terminal.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probing gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway health returned %s", resp.Status)
	}
	return nil
}
