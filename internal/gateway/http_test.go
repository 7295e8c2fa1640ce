// File: internal/gateway/http_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
	"bluestock_client/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{GatewayBaseURL: srv.URL, RequestTimeout: 2 * time.Second}
	return NewHTTPClient(cfg, zap.NewNop()), srv
}

func TestHTTPClient_LoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req shared.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret123", req.Password)

		json.NewEncoder(w).Encode(shared.AuthResult{
			Identity: shared.UserIdentity{ID: "1", Email: "a@b.com"},
			Token:    "tok-abc",
		})
	}))

	result, err := client.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", result.Token)
	assert.Equal(t, "1", result.Identity.ID)
}

func TestHTTPClient_LoginInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"code": "UNAUTHORIZED", "message": "Invalid email or password."})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	var rejected *common.AuthRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid email or password.", rejected.Reason)
}

func TestHTTPClient_ServerErrorIsTransportFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "secret123")
	var tf *common.TransportFailure
	require.ErrorAs(t, err, &tf)
}

func TestHTTPClient_UnreachableGatewayIsTransportFailure(t *testing.T) {
	cfg := &config.Config{GatewayBaseURL: "http://127.0.0.1:1", RequestTimeout: time.Second}
	client := NewHTTPClient(cfg, zap.NewNop())

	_, err := client.Login(context.Background(), "a@b.com", "secret123")
	var tf *common.TransportFailure
	require.ErrorAs(t, err, &tf)
}

func TestHTTPClient_TimeoutIsTransportFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	client.httpc.Timeout = 50 * time.Millisecond

	_, err := client.Login(context.Background(), "a@b.com", "secret123")
	var tf *common.TransportFailure
	require.ErrorAs(t, err, &tf)
}

func TestHTTPClient_RegisterSendsOTP(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		json.NewEncoder(w).Encode(shared.RegisterResponse{OTPSent: true})
	}))

	err := client.Register(context.Background(), shared.RegisterRequest{
		FullName:     "John Doe",
		Email:        "a@b.com",
		Password:     "longenough1",
		MobileNumber: "+919876543210",
		Gender:       shared.GenderMale,
	})
	require.NoError(t, err)
}

func TestHTTPClient_VerifyOTPRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify-otp", r.URL.Path)
		var req shared.VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+919876543210", req.MobileNumber)

		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "BAD_REQUEST", "message": "Invalid or expired OTP."})
	}))

	_, err := client.VerifyOTP(context.Background(), "+919876543210", "000000")
	var rejected *common.AuthRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid or expired OTP.", rejected.Reason)
}
