// File: internal/auth/otp.go
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"bluestock_client/internal/shared"

	"go.uber.org/zap"
)

// PendingRegistration is a registration draft parked between the OTP-send
// and OTP-verify steps. No account exists for it yet; if the code expires
// unverified the draft simply disappears.
type PendingRegistration struct {
	Draft     shared.RegisterRequest `json:"draft"`
	Code      string                 `json:"code"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// Expired reports whether the code's validity window has passed.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// OTPStore parks pending registrations keyed by mobile number. A second
// Put for the same mobile replaces the previous draft and code, which is
// what makes the client's backtrack-and-resubmit rule safe on the server
// side too.
type OTPStore interface {
	Put(ctx context.Context, p PendingRegistration) error
	// Get returns the pending registration for mobile, or nil when none
	// exists or it has expired.
	Get(ctx context.Context, mobile string) (*PendingRegistration, error)
	Delete(ctx context.Context, mobile string) error
}

// GenerateOTP produces a random six-digit code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// MemoryOTPStore is the zero-infrastructure OTP store. Expired entries are
// filtered on read and removed in bulk by the cron sweep job.
type MemoryOTPStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]PendingRegistration
	logger  *zap.Logger
}

var _ OTPStore = (*MemoryOTPStore)(nil)

// NewMemoryOTPStore creates an in-memory OTP store with the given code TTL.
func NewMemoryOTPStore(ttl time.Duration, logger *zap.Logger) *MemoryOTPStore {
	return &MemoryOTPStore{
		ttl:     ttl,
		pending: make(map[string]PendingRegistration),
		logger:  logger,
	}
}

func (s *MemoryOTPStore) Put(_ context.Context, p PendingRegistration) error {
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(s.ttl)
	}
	s.mu.Lock()
	s.pending[p.Draft.MobileNumber] = p
	s.mu.Unlock()
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, mobile string) (*PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[mobile]
	if !ok {
		return nil, nil
	}
	if p.Expired(time.Now()) {
		delete(s.pending, mobile)
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, mobile string) error {
	s.mu.Lock()
	delete(s.pending, mobile)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired drafts. Called periodically by the OTP expiry job.
func (s *MemoryOTPStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for mobile, p := range s.pending {
		if p.Expired(now) {
			delete(s.pending, mobile)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("swept expired otp drafts", zap.Int("removed", removed))
	}
	return removed
}
