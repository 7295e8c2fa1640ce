// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bluestock_client/internal/common"
	"bluestock_client/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service owns account creation and credential verification for the dev
// gateway.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Authenticate verifies an email/password pair and returns the account.
// A missing account and a wrong password are indistinguishable to the
// caller; both come back as ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Warn("failed to record last login", zap.String("userID", u.ID), zap.Error(err))
	}

	return u, nil
}

// EmailTaken reports whether an account already exists for email.
func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// MobileTaken reports whether an account already exists for mobile.
func (s *Service) MobileTaken(ctx context.Context, mobile string) (bool, error) {
	_, err := s.repo.FindByMobileNumber(ctx, mobile)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// CreateVerified creates the account for a registration whose OTP has just
// been verified. The mobile number is proven; email verification is
// deferred to a separate flow.
func (s *Service) CreateVerified(ctx context.Context, req shared.RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:               uuid.NewString(),
		Email:            req.Email,
		PasswordHash:     string(hash),
		FullName:         req.FullName,
		MobileNumber:     req.MobileNumber,
		Gender:           string(req.Gender),
		IsMobileVerified: true,
		IsEmailVerified:  false,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("userID", u.ID), zap.String("email", u.Email))
	return u, nil
}

// Get returns the account for id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
