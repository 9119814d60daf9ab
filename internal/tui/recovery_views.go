package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ForgotPasswordForm collects the account email for a recovery code.
type ForgotPasswordForm struct {
	email      textinput.Model
	submitting bool
	errMsg     string
}

// NewForgotPasswordForm creates the first recovery step.
func NewForgotPasswordForm() ForgotPasswordForm {
	email := textinput.New()
	email.Placeholder = "satoshi@blockchain.com"
	email.Prompt = "Email: "
	email.PromptStyle = InputPromptStyle
	email.CharLimit = 100
	email.Width = 40
	email.Focus()
	return ForgotPasswordForm{email: email}
}

// Value returns the entered email.
func (f *ForgotPasswordForm) Value() string {
	return strings.TrimSpace(f.email.Value())
}

// Update forwards a message to the email input.
func (f ForgotPasswordForm) Update(msg tea.Msg) (ForgotPasswordForm, tea.Cmd) {
	var cmd tea.Cmd
	f.email, cmd = f.email.Update(msg)
	return f, cmd
}

// Reset clears submission state after an attempt finishes.
func (f *ForgotPasswordForm) Reset() {
	f.submitting = false
}

// View renders the forgot-password card.
func (f ForgotPasswordForm) View(width, height int) string {
	var content strings.Builder
	content.WriteString(logoLine("Reset Password"))
	content.WriteString("\n\n")
	content.WriteString(FormLabelStyle.Render("We'll send a 6-digit code to your email."))
	content.WriteString("\n\n")

	if f.errMsg != "" {
		content.WriteString(ErrorStyle.Render(f.errMsg))
		content.WriteString("\n\n")
	}

	content.WriteString(f.email.View())
	content.WriteString("\n\n")
	if f.submitting {
		content.WriteString(WarningStyle.Render("Sending code..."))
	} else {
		content.WriteString(DimStyle.Render("enter send code · esc back to login"))
	}

	return centerBox(width, height, content.String())
}

// VerifyOTPForm collects the 6-digit code. Non-digit input is dropped.
type VerifyOTPForm struct {
	code       textinput.Model
	email      string
	submitting bool
	errMsg     string
}

// NewVerifyOTPForm creates the code entry step for the given email.
func NewVerifyOTPForm(email string) VerifyOTPForm {
	code := textinput.New()
	code.Placeholder = "000000"
	code.Prompt = "Code: "
	code.PromptStyle = InputPromptStyle
	code.CharLimit = 6
	code.Width = 12
	code.Validate = digitsOnly
	code.Focus()
	return VerifyOTPForm{code: code, email: email}
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errNonDigit
		}
	}
	return nil
}

// errNonDigit rejects non-numeric code input at the textinput layer,
// which discards the keystroke entirely.
var errNonDigit = errors.New("code must be digits")

// Value returns the entered code.
func (f *VerifyOTPForm) Value() string {
	return f.code.Value()
}

// ClearCode empties the code input after a failed verification.
func (f *VerifyOTPForm) ClearCode() {
	f.code.SetValue("")
}

// Update forwards a message to the code input.
func (f VerifyOTPForm) Update(msg tea.Msg) (VerifyOTPForm, tea.Cmd) {
	var cmd tea.Cmd
	f.code, cmd = f.code.Update(msg)
	return f, cmd
}

// Reset clears submission state after an attempt finishes.
func (f *VerifyOTPForm) Reset() {
	f.submitting = false
}

// View renders the code entry card.
func (f VerifyOTPForm) View(width, height int) string {
	var content strings.Builder
	content.WriteString(logoLine("Verify Code"))
	content.WriteString("\n\n")
	content.WriteString(FormLabelStyle.Render("Enter the 6-digit code sent to " + f.email))
	content.WriteString("\n\n")

	if f.errMsg != "" {
		content.WriteString(ErrorStyle.Render(f.errMsg))
		content.WriteString("\n\n")
	}

	content.WriteString(f.code.View())
	content.WriteString("\n\n")
	if f.submitting {
		content.WriteString(WarningStyle.Render("Verifying..."))
	} else {
		content.WriteString(DimStyle.Render("enter verify · ctrl+r resend · esc start over"))
	}

	return centerBox(width, height, content.String())
}

// ResetPasswordForm collects the new password pair.
type ResetPasswordForm struct {
	inputs     []textinput.Model // 0: password, 1: confirm
	focus      int
	submitting bool
	errMsg     string
}

// NewResetPasswordForm creates the final recovery step.
func NewResetPasswordForm() ResetPasswordForm {
	password := textinput.New()
	password.Placeholder = "new password"
	password.Prompt = "New password: "
	password.PromptStyle = InputPromptStyle
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40
	password.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.Prompt = "Confirm: "
	confirm.PromptStyle = InputPromptStyle
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 100
	confirm.Width = 40

	return ResetPasswordForm{inputs: []textinput.Model{password, confirm}}
}

// CycleFocus moves focus to the next input.
func (f *ResetPasswordForm) CycleFocus() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Values returns the new password and its confirmation.
func (f *ResetPasswordForm) Values() (password, confirm string) {
	return f.inputs[0].Value(), f.inputs[1].Value()
}

// Update forwards a message to the focused input.
func (f ResetPasswordForm) Update(msg tea.Msg) (ResetPasswordForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Reset clears submission state after an attempt finishes.
func (f *ResetPasswordForm) Reset() {
	f.submitting = false
}

// View renders the new-password card.
func (f ResetPasswordForm) View(width, height int) string {
	var content strings.Builder
	content.WriteString(logoLine("New Password"))
	content.WriteString("\n\n")

	if f.errMsg != "" {
		content.WriteString(ErrorStyle.Render(f.errMsg))
		content.WriteString("\n\n")
	}

	for _, in := range f.inputs {
		content.WriteString(in.View())
		content.WriteString("\n")
	}

	content.WriteString("\n")
	if f.submitting {
		content.WriteString(WarningStyle.Render("Resetting password..."))
	} else {
		content.WriteString(DimStyle.Render("enter reset · tab next field · esc start over"))
	}

	return centerBox(width, height, content.String())
}
