// File: internal/gateway/client.go
package gateway

import (
	"context"

	"bluestock_client/internal/shared"
)

// Client is the narrow contract through which the auth flow talks to the
// backend gateway. Implementations map transport and status failures onto
// the common error taxonomy; no other error kinds escape.
type Client interface {
	// Login exchanges credentials for an identity/token pair.
	Login(ctx context.Context, email, password string) (*shared.AuthResult, error)
	// Register submits a candidate profile; on success the gateway has
	// dispatched an OTP to the profile's mobile number. No account exists
	// yet.
	Register(ctx context.Context, req shared.RegisterRequest) error
	// VerifyOTP completes a pending registration, creating the account and
	// minting its first token.
	VerifyOTP(ctx context.Context, mobileNumber, otp string) (*shared.AuthResult, error)
}
