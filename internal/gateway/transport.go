// File: internal/gateway/transport.go
package gateway

import (
	"net/http"

	"bluestock_client/internal/common"
	"bluestock_client/internal/session"

	"go.uber.org/zap"
)

// AuthTransport is an http.RoundTripper that attaches the current session
// token as a bearer credential to every outgoing request, and force-clears
// the session when the gateway rejects that token. It is the integration
// point between the session store and every authenticated API client.
type AuthTransport struct {
	store  *session.Store
	base   http.RoundTripper
	logger *zap.Logger
}

var _ http.RoundTripper = (*AuthTransport)(nil)

// NewAuthTransport wraps base (or http.DefaultTransport when nil) with
// bearer-token handling for the given session store.
func NewAuthTransport(store *session.Store, base http.RoundTripper, logger *zap.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{store: store, base: base, logger: logger}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	snap := t.store.Read()
	if snap.IsAuthenticated() {
		// Clone before mutating; RoundTrippers must not modify the
		// caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+snap.Token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, &common.TransportFailure{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		t.logger.Warn("gateway rejected session token, clearing session",
			zap.String("path", req.URL.Path),
		)
		t.store.Clear()
		return nil, common.ErrTokenExpired
	}

	return resp, nil
}
