// File: internal/authflow/register.go
package authflow

import (
	"context"
	"sync"
	"sync/atomic"

	"bluestock_client/internal/common"
	"bluestock_client/internal/gateway"
	"bluestock_client/internal/session"
	"bluestock_client/internal/shared"

	"go.uber.org/zap"
)

// Stage is the registration flow's current position.
type Stage string

const (
	// StageCollectingProfile accepts profile submissions.
	StageCollectingProfile Stage = "collecting_profile"
	// StageAwaitingOTP holds a client-side draft and accepts the one-time
	// code sent to the draft's mobile number.
	StageAwaitingOTP Stage = "awaiting_otp"
)

// ProfileForm is the candidate profile plus password and confirmation. The
// confirmation is checked byte-for-byte against the password and never
// leaves the client.
type ProfileForm struct {
	FullName        string        `validate:"required"`
	Email           string        `validate:"required,email"`
	MobileNumber    string        `validate:"required"`
	Gender          shared.Gender `validate:"required,oneof=m f o"`
	Password        string        `validate:"required,min=8"`
	ConfirmPassword string        `validate:"required,eqfield=Password"`
}

// RegistrationController drives the two-step registration flow as an
// explicit state machine: collecting profile -> awaiting OTP -> done. The
// draft is held client-side only; no account exists until the OTP verifies.
//
// Backtracking rule: submitting a profile while awaiting an OTP discards
// the stale draft, so an OTP issued for a previous draft can never be mixed
// with a new one.
type RegistrationController struct {
	gateway gateway.Client
	store   *session.Store
	logger  *zap.Logger

	mu    sync.Mutex
	stage Stage
	draft shared.RegisterRequest
	busy  atomic.Bool
}

// NewRegistrationController creates a registration controller in the
// profile-collecting stage.
func NewRegistrationController(gw gateway.Client, store *session.Store, logger *zap.Logger) *RegistrationController {
	return &RegistrationController{
		gateway: gw,
		store:   store,
		logger:  logger,
		stage:   StageCollectingProfile,
	}
}

// Stage returns the flow's current stage.
func (c *RegistrationController) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// Submitting reports whether a submission is currently in flight.
func (c *RegistrationController) Submitting() bool {
	return c.busy.Load()
}

// SubmitProfile validates the profile and asks the gateway to dispatch an
// OTP to its mobile number. On success the flow advances to StageAwaitingOTP
// with the draft held for the verification step. Calling it from
// StageAwaitingOTP (back navigation) abandons the previous draft first, so
// a stale OTP cannot carry over.
func (c *RegistrationController) SubmitProfile(ctx context.Context, form ProfileForm) error {
	if err := fieldErrors(validate.Struct(form)); err != nil {
		return err
	}

	if !c.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer c.busy.Store(false)

	// Any previously staged draft is dead from this point on, whether or
	// not the new request succeeds.
	c.mu.Lock()
	c.stage = StageCollectingProfile
	c.draft = shared.RegisterRequest{}
	c.mu.Unlock()

	draft := shared.RegisterRequest{
		FullName:     form.FullName,
		Email:        form.Email,
		Password:     form.Password,
		MobileNumber: form.MobileNumber,
		Gender:       form.Gender,
	}

	if err := c.gateway.Register(ctx, draft); err != nil {
		c.logger.Debug("profile submission rejected", zap.String("email", form.Email), zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.stage = StageAwaitingOTP
	c.draft = draft
	c.mu.Unlock()

	c.logger.Info("otp dispatched", zap.String("mobile", draft.MobileNumber))
	return nil
}

// SubmitOTP verifies the one-time code for the staged draft. The code must
// be exactly six digits; anything else is rejected locally without a
// request. On success the gateway creates the account, the session is
// established (mobile verified, email verification deferred) and the flow
// resets. On rejection the flow stays in StageAwaitingOTP for a retry or
// resend.
func (c *RegistrationController) SubmitOTP(ctx context.Context, otp string) error {
	if err := validateOTP(otp); err != nil {
		return err
	}

	if !c.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	if c.stage != StageAwaitingOTP {
		c.mu.Unlock()
		return common.FieldErrors{"otp": "No registration is awaiting verification."}
	}
	draft := c.draft
	c.mu.Unlock()

	result, err := c.gateway.VerifyOTP(ctx, draft.MobileNumber, otp)
	if err != nil {
		c.logger.Debug("otp verification failed", zap.String("mobile", draft.MobileNumber), zap.Error(err))
		return err
	}

	c.store.Establish(result.Identity, result.Token)

	c.mu.Lock()
	c.stage = StageCollectingProfile
	c.draft = shared.RegisterRequest{}
	c.mu.Unlock()

	return nil
}

// ResendOTP asks the gateway to dispatch a fresh code for the staged draft.
func (c *RegistrationController) ResendOTP(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	if c.stage != StageAwaitingOTP {
		c.mu.Unlock()
		return common.FieldErrors{"otp": "No registration is awaiting verification."}
	}
	draft := c.draft
	c.mu.Unlock()

	return c.gateway.Register(ctx, draft)
}

// Abandon destroys the draft and returns to profile collection. Called when
// the user navigates away from the registration screen.
func (c *RegistrationController) Abandon() {
	c.mu.Lock()
	c.stage = StageCollectingProfile
	c.draft = shared.RegisterRequest{}
	c.mu.Unlock()
}

// validateOTP enforces the input-boundary policy: exactly six characters,
// all digits. No partial submission.
func validateOTP(otp string) error {
	if len(otp) != shared.OTPLength {
		return common.FieldErrors{"otp": "The code must be exactly 6 digits."}
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return common.FieldErrors{"otp": "The code may only contain digits."}
		}
	}
	return nil
}
