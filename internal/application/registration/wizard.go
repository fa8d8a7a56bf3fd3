package registration

import (
	"context"
	"errors"
	"fmt"
)

// WizardState is one step of the signup wizard.
type WizardState int

const (
	StateEmailEntry WizardState = iota
	StateCodeEntry
	StateComplete
)

func (s WizardState) String() string {
	switch s {
	case StateEmailEntry:
		return "email_entry"
	case StateCodeEntry:
		return "code_entry"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// ErrWizardState signals a step submitted out of order.
var ErrWizardState = errors.New("step not allowed in current wizard state")

// Wizard drives one signup flow as an explicit state machine:
// EmailEntry -> CodeEntry -> Complete. Each transition is guarded, so a code
// can never be submitted before an email, and a completed flow is terminal.
// A failed code submission keeps the wizard in CodeEntry for retry; Restart
// returns to EmailEntry, discarding the pending email.
type Wizard struct {
	svc      Service
	state    WizardState
	email    string
	userType string
	otpID    string
	result   *VerifyResult
}

func NewWizard(svc Service) *Wizard {
	return &Wizard{svc: svc, state: StateEmailEntry}
}

func (w *Wizard) State() WizardState { return w.state }

// Email returns the address the pending code was sent to. Empty in EmailEntry.
func (w *Wizard) Email() string { return w.email }

// OTPID identifies the issued code record. Empty in EmailEntry.
func (w *Wizard) OTPID() string { return w.otpID }

// Result returns the verification outcome. Nil until the wizard completes.
func (w *Wizard) Result() *VerifyResult { return w.result }

// SubmitEmail issues a code for the address and advances to CodeEntry.
func (w *Wizard) SubmitEmail(ctx context.Context, email, userType string) error {
	if w.state != StateEmailEntry {
		return fmt.Errorf("submit email in %s: %w", w.state, ErrWizardState)
	}
	otpID, err := w.svc.SendOTP(ctx, SendOTPRequest{Email: email, UserType: userType})
	if err != nil {
		return err
	}
	w.email = email
	w.userType = userType
	w.otpID = otpID
	w.state = StateCodeEntry
	return nil
}

// ResendCode issues a fresh code for the pending email without leaving CodeEntry.
func (w *Wizard) ResendCode(ctx context.Context) error {
	if w.state != StateCodeEntry {
		return fmt.Errorf("resend code in %s: %w", w.state, ErrWizardState)
	}
	otpID, err := w.svc.SendOTP(ctx, SendOTPRequest{Email: w.email, UserType: w.userType})
	if err != nil {
		return err
	}
	w.otpID = otpID
	return nil
}

// SubmitCode verifies the code and completes the flow. On a bad code the
// wizard stays in CodeEntry so the user can retry or resend.
func (w *Wizard) SubmitCode(ctx context.Context, code string, data *UserData) (*VerifyResult, error) {
	if w.state != StateCodeEntry {
		return nil, fmt.Errorf("submit code in %s: %w", w.state, ErrWizardState)
	}
	res, err := w.svc.VerifyOTP(ctx, VerifyOTPRequest{
		Email:    w.email,
		OTP:      code,
		UserType: w.userType,
		UserData: data,
	})
	if err != nil {
		return nil, err
	}
	w.result = res
	w.state = StateComplete
	return res, nil
}

// Restart abandons the pending flow and returns to EmailEntry. Completed
// flows are terminal and cannot be restarted.
func (w *Wizard) Restart() error {
	if w.state == StateComplete {
		return fmt.Errorf("restart in %s: %w", w.state, ErrWizardState)
	}
	w.email = ""
	w.userType = ""
	w.otpID = ""
	w.state = StateEmailEntry
	return nil
}
