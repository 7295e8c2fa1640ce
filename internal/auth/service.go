// File: internal/auth/service.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"bluestock_client/internal/common"
	"bluestock_client/internal/shared"
	"bluestock_client/internal/user"

	"go.uber.org/zap"
)

// Service orchestrates the gateway side of the three auth operations:
// credential login, OTP dispatch for a registration draft, and
// verify-and-create.
type Service struct {
	users  *user.Service
	tokens *TokenService
	otps   OTPStore
	logger *zap.Logger
}

// NewService creates the auth service.
func NewService(users *user.Service, tokens *TokenService, otps OTPStore, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, otps: otps, logger: logger}
}

// Login verifies credentials and mints a token.
func (s *Service) Login(ctx context.Context, email, password string) (*shared.AuthResult, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	return &shared.AuthResult{Identity: u.ToIdentity(), Token: token}, nil
}

// StartRegistration stages a draft and dispatches an OTP to its mobile
// number. The account is not created here; an abandoned draft expires with
// its code. Re-staging the same mobile number replaces any earlier draft.
func (s *Service) StartRegistration(ctx context.Context, req shared.RegisterRequest) error {
	taken, err := s.users.EmailTaken(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return common.ErrBadRequest.WithDetails("A user with this email already exists.")
	}

	taken, err = s.users.MobileTaken(ctx, req.MobileNumber)
	if err != nil {
		return fmt.Errorf("failed to check mobile number: %w", err)
	}
	if taken {
		return common.ErrBadRequest.WithDetails("A user with this mobile number already exists.")
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.otps.Put(ctx, PendingRegistration{Draft: req, Code: code}); err != nil {
		return err
	}

	// A real gateway would hand the code to an SMS provider here. The dev
	// gateway logs it instead so local flows can be completed by hand.
	s.logger.Info("otp dispatched",
		zap.String("mobile", req.MobileNumber),
		zap.String("code", code),
	)
	return nil
}

// VerifyOTP checks the code for a staged draft and, on success, creates the
// account and mints its first token. Wrong, expired, and unknown codes are
// indistinguishable to the caller.
func (s *Service) VerifyOTP(ctx context.Context, mobile, code string) (*shared.AuthResult, error) {
	rejection := common.ErrBadRequest.WithDetails("Invalid or expired OTP.")

	pending, err := s.otps.Get(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, rejection
	}
	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		return nil, rejection
	}

	if err := s.otps.Delete(ctx, mobile); err != nil {
		s.logger.Warn("failed to delete verified otp draft", zap.String("mobile", mobile), zap.Error(err))
	}

	u, err := s.users.CreateVerified(ctx, pending.Draft)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			// An account claimed this email or mobile after the OTP was
			// dispatched. A permanent refusal, not a server fault.
			if apiErr.StatusCode == http.StatusConflict {
				return nil, common.ErrBadRequest.WithDetails("An account already exists for this email or mobile number.")
			}
			return nil, apiErr
		}
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	return &shared.AuthResult{Identity: u.ToIdentity(), Token: token}, nil
}

// Identity resolves the account behind a validated token subject.
func (s *Service) Identity(ctx context.Context, userID string) (*shared.UserIdentity, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Account no longer exists.")
		}
		return nil, err
	}
	identity := u.ToIdentity()
	return &identity, nil
}
