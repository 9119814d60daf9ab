// Package recovery implements the credential-recovery state machine:
// request a code, verify it, set a new password. The flow runs before a
// session exists and keeps its intermediate state in transient storage so
// nothing outlives the process.
package recovery

import (
	"context"
	"log/slog"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/store"
)

// State of the recovery flow.
type State int

const (
	Idle State = iota
	OTPRequested
	OTPVerified
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case OTPRequested:
		return "otp_requested"
	case OTPVerified:
		return "otp_verified"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

const (
	keyResetEmail  = "resetEmail"
	keyVerifiedOTP = "verifiedOTP"
)

const otpLength = 6

// MinPasswordLength is the minimum accepted new-password length.
const MinPasswordLength = 6

// recoveryClient is the slice of the API the flow needs.
type recoveryClient interface {
	ForgotPassword(ctx context.Context, email string) (*api.Message, error)
	VerifyOTP(ctx context.Context, email, otp string) (*api.Message, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (*api.Message, error)
}

// Flow is the linear recovery state machine. The flow views are
// independently addressable, so each step's guard is re-checked on entry
// via CanEnterVerify/CanEnterReset, not only at submit time.
type Flow struct {
	client    recoveryClient
	transient *store.Transient
	logger    *slog.Logger
	state     State
}

// NewFlow creates a flow in the Idle state.
func NewFlow(client recoveryClient, transient *store.Transient, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		client:    client,
		transient: transient,
		logger:    logger,
		state:     Idle,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Email returns the address the flow was started for.
func (f *Flow) Email() string {
	return f.transient.Get(keyResetEmail)
}

// RequestCode asks the server to send a recovery code to email. On success
// the flow advances to OTPRequested; on failure it stays in Idle.
func (f *Flow) RequestCode(ctx context.Context, email string) error {
	if email == "" {
		return &api.ValidationError{Message: "email is required"}
	}

	if _, err := f.client.ForgotPassword(ctx, email); err != nil {
		return err
	}

	f.transient.Set(keyResetEmail, email)
	f.state = OTPRequested
	f.logger.Info("recovery code requested", "email", email)
	return nil
}

// Resend re-issues the send-code call without changing state. Only valid
// from OTPRequested.
func (f *Flow) Resend(ctx context.Context) error {
	email := f.transient.Get(keyResetEmail)
	if email == "" {
		return &api.ValidationError{Message: "no recovery in progress"}
	}
	_, err := f.client.ForgotPassword(ctx, email)
	return err
}

// CanEnterVerify reports whether the verify-code view may render; without
// a requested code the caller must redirect to the flow's start.
func (f *Flow) CanEnterVerify() bool {
	return f.transient.Get(keyResetEmail) != ""
}

// VerifyCode submits the 6-digit code. On success the flow advances to
// OTPVerified; on failure it stays in OTPRequested and the caller clears
// the entered digits.
func (f *Flow) VerifyCode(ctx context.Context, code string) error {
	if !f.CanEnterVerify() {
		return &api.ValidationError{Message: "no recovery in progress"}
	}
	if len(code) != otpLength || !allDigits(code) {
		return &api.ValidationError{Message: "please enter the complete 6-digit code"}
	}

	email := f.transient.Get(keyResetEmail)
	if _, err := f.client.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	f.transient.Set(keyVerifiedOTP, code)
	f.state = OTPVerified
	f.logger.Info("recovery code verified", "email", email)
	return nil
}

// CanEnterReset reports whether the set-new-password view may render.
func (f *Flow) CanEnterReset() bool {
	return f.transient.Get(keyResetEmail) != "" && f.transient.Get(keyVerifiedOTP) != ""
}

// ResetPassword submits the new password. Validation failures (mismatch,
// too short) never reach the network. On success the transient context is
// destroyed and the flow is Completed; the user returns to login.
func (f *Flow) ResetPassword(ctx context.Context, newPassword, confirm string) error {
	if !f.CanEnterReset() {
		return &api.ValidationError{Message: "no verified recovery in progress"}
	}
	if newPassword != confirm {
		return &api.ValidationError{Message: "passwords do not match"}
	}
	if len(newPassword) < MinPasswordLength {
		return &api.ValidationError{Message: "password must be at least 6 characters"}
	}

	email := f.transient.Get(keyResetEmail)
	otp := f.transient.Get(keyVerifiedOTP)
	if _, err := f.client.ResetPassword(ctx, email, otp, newPassword); err != nil {
		return err
	}

	f.transient.Delete(keyResetEmail)
	f.transient.Delete(keyVerifiedOTP)
	f.state = Completed
	f.logger.Info("password reset completed", "email", email)
	return nil
}

// Abandon destroys the recovery context and returns the flow to Idle.
func (f *Flow) Abandon() {
	f.transient.Delete(keyResetEmail)
	f.transient.Delete(keyVerifiedOTP)
	f.state = Idle
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
