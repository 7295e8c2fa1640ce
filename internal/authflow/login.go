// File: internal/authflow/login.go
package authflow

import (
	"context"
	"sync/atomic"

	"bluestock_client/internal/common"
	"bluestock_client/internal/gateway"
	"bluestock_client/internal/session"

	"go.uber.org/zap"
)

// LoginForm carries the user's credential input.
type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginController drives the single-step login flow. It has two states,
// idle and submitting, tracked by a busy flag: at most one submission is in
// flight at a time, and a second attempt while one is outstanding is
// ignored with ErrBusy rather than firing a duplicate request.
type LoginController struct {
	gateway gateway.Client
	store   *session.Store
	logger  *zap.Logger
	busy    atomic.Bool
}

// NewLoginController creates a login controller bound to the given gateway
// client and session store.
func NewLoginController(gw gateway.Client, store *session.Store, logger *zap.Logger) *LoginController {
	return &LoginController{gateway: gw, store: store, logger: logger}
}

// Submitting reports whether a submission is currently in flight.
func (c *LoginController) Submitting() bool {
	return c.busy.Load()
}

// Submit validates the form and exchanges the credentials for a session.
// On success the session store holds the new identity/token pair and the
// caller navigates to the authenticated landing page. On any failure the
// store is untouched and the controller returns to idle; the caller may
// resubmit. No automatic retry.
func (c *LoginController) Submit(ctx context.Context, form LoginForm) error {
	if err := fieldErrors(validate.Struct(form)); err != nil {
		return err
	}

	if !c.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer c.busy.Store(false)

	result, err := c.gateway.Login(ctx, form.Email, form.Password)
	if err != nil {
		c.logger.Debug("login failed", zap.String("email", form.Email), zap.Error(err))
		return err
	}

	c.store.Establish(result.Identity, result.Token)
	return nil
}
