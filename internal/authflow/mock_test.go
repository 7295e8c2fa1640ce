// File: internal/authflow/mock_test.go
package authflow

import (
	"context"
	"sync/atomic"

	"bluestock_client/internal/shared"
)

// mockGateway is a hand-rolled gateway.Client for controller tests. Each
// method counts its calls and delegates to an optional func field; the
// defaults succeed with canned data.
type mockGateway struct {
	loginCalls    atomic.Int32
	registerCalls atomic.Int32
	verifyCalls   atomic.Int32

	loginFunc    func(ctx context.Context, email, password string) (*shared.AuthResult, error)
	registerFunc func(ctx context.Context, req shared.RegisterRequest) error
	verifyFunc   func(ctx context.Context, mobile, otp string) (*shared.AuthResult, error)
}

func (m *mockGateway) Login(ctx context.Context, email, password string) (*shared.AuthResult, error) {
	m.loginCalls.Add(1)
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return &shared.AuthResult{
		Identity: shared.UserIdentity{ID: "1", Email: email, FullName: "John Doe"},
		Token:    "tok-abc",
	}, nil
}

func (m *mockGateway) Register(ctx context.Context, req shared.RegisterRequest) error {
	m.registerCalls.Add(1)
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil
}

func (m *mockGateway) VerifyOTP(ctx context.Context, mobile, otp string) (*shared.AuthResult, error) {
	m.verifyCalls.Add(1)
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, mobile, otp)
	}
	return &shared.AuthResult{
		Identity: shared.UserIdentity{
			ID:               "1",
			MobileNumber:     mobile,
			IsMobileVerified: true,
			IsEmailVerified:  false,
		},
		Token: "tok-abc",
	}, nil
}
