// File: internal/company/client.go
package company

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
)

// Client consumes the gateway's company directory endpoints. It must be
// constructed with an http.Client whose transport is the authenticated
// gateway.AuthTransport; every call here requires a session, and a
// rejected token surfaces as common.ErrTokenExpired with the session
// already cleared.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a directory client on top of the authenticated httpc.
func NewClient(cfg *config.Config, httpc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(cfg.GatewayBaseURL, "/"), httpc: httpc}
}

// List fetches the whole directory.
func (c *Client) List(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := c.do(ctx, http.MethodGet, "/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Get fetches one company by id or slug.
func (c *Client) Get(ctx context.Context, idOrSlug string) (*Company, error) {
	var company Company
	if err := c.do(ctx, http.MethodGet, "/company/"+idOrSlug, nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// Create registers a new company profile owned by the current user.
func (c *Client) Create(ctx context.Context, req UpsertRequest) (*Company, error) {
	var company Company
	if err := c.do(ctx, http.MethodPost, "/company/register", req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// Update replaces an existing company profile.
func (c *Client) Update(ctx context.Context, idOrSlug string, req UpsertRequest) (*Company, error) {
	var company Company
	if err := c.do(ctx, http.MethodPut, "/company/"+idOrSlug, req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// The auth transport already wraps transport errors and handles
		// the 401 force-logout; unwrap the url.Error layer for callers.
		return unwrapClientError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &common.TransportFailure{Err: fmt.Errorf("gateway returned status %d for %s %s", resp.StatusCode, method, path)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.TransportFailure{Err: fmt.Errorf("failed to decode gateway response: %w", err)}
	}
	return nil
}

// unwrapClientError strips the *url.Error wrapper the http.Client adds
// around round-tripper errors, preserving the taxonomy underneath.
func unwrapClientError(err error) error {
	if errors.Is(err, common.ErrTokenExpired) {
		return common.ErrTokenExpired
	}
	var tf *common.TransportFailure
	if errors.As(err, &tf) {
		return tf
	}
	return &common.TransportFailure{Err: err}
}
