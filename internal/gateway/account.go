package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
	"bluestock_client/internal/shared"
)

// AccountClient fetches the caller's own profile through the
// authenticated transport. A successful Me after rehydration is how the
// app fills in the identity half of an optimistic session.
type AccountClient struct {
	baseURL string
	httpc   *http.Client
}

// NewAccountClient creates an account client on top of the authenticated httpc.
func NewAccountClient(cfg *config.Config, httpc *http.Client) *AccountClient {
	return &AccountClient{baseURL: strings.TrimRight(cfg.GatewayBaseURL, "/"), httpc: httpc}
}

// Me fetches the profile of the currently authenticated user.
func (c *AccountClient) Me(ctx context.Context) (*shared.UserIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
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

	var identity shared.UserIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, &common.TransportFailure{Err: fmt.Errorf("failed to decode profile response: %w", err)}
	}
	return &identity, nil
}
