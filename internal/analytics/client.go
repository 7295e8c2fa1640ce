// File: internal/analytics/client.go
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
)

// Client fetches aggregate analytics through the authenticated transport.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates an analytics client on top of the authenticated httpc.
func NewClient(cfg *config.Config, httpc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(cfg.GatewayBaseURL, "/"), httpc: httpc}
}

// Stats fetches the analytics payload.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/analytics", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, &common.TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &common.TransportFailure{Err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, &common.TransportFailure{Err: fmt.Errorf("failed to decode analytics response: %w", err)}
	}
	return &stats, nil
}
