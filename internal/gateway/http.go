// File: internal/gateway/http.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
	"bluestock_client/internal/shared"

	"go.uber.org/zap"
)

// HTTPClient implements Client over the gateway's JSON-over-HTTP contract.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a gateway client. The request timeout from config
// bounds every call; a timed-out request surfaces as TransportFailure.
func NewHTTPClient(cfg *config.Config, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.GatewayBaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger,
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*shared.AuthResult, error) {
	var result shared.AuthResult
	err := c.post(ctx, "/auth/login", shared.LoginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, req shared.RegisterRequest) error {
	var result shared.RegisterResponse
	if err := c.post(ctx, "/auth/register", req, &result); err != nil {
		return err
	}
	if !result.OTPSent {
		return &common.TransportFailure{Err: fmt.Errorf("gateway accepted registration but reported otpSent=false")}
	}
	return nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, mobileNumber, otp string) (*shared.AuthResult, error) {
	var result shared.AuthResult
	err := c.post(ctx, "/auth/verify-otp", shared.VerifyOTPRequest{MobileNumber: mobileNumber, OTP: otp}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// post issues one JSON request and decodes the response into out.
// Status mapping: 2xx decode, 400/401 AuthRejected, everything else
// (including unreachable/timeout) TransportFailure.
func (c *HTTPClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("path", path), zap.Error(err))
		return &common.TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &common.TransportFailure{Err: fmt.Errorf("failed to decode gateway response: %w", err)}
		}
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		reason := decodeErrorReason(resp.Body)
		c.logger.Debug("gateway rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", reason),
		)
		return &common.AuthRejected{Reason: reason}
	default:
		c.logger.Warn("unexpected gateway status", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &common.TransportFailure{Err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
	}
}

// decodeErrorReason pulls a human-readable message out of an APIError
// response body. The gateway carries the specific text in details and a
// generic summary in message; either way the body is informative only,
// status codes drive the control flow.
func decodeErrorReason(r io.Reader) string {
	var apiErr struct {
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	}
	if err := json.NewDecoder(r).Decode(&apiErr); err != nil {
		return "request rejected by gateway"
	}
	if s, ok := apiErr.Details.(string); ok && s != "" {
		return s
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return "request rejected by gateway"
}
