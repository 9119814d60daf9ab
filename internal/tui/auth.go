package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginForm is the login view: email and password inputs.
type LoginForm struct {
	inputs     []textinput.Model // 0: email, 1: password
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginForm creates the login form with the email field focused.
func NewLoginForm() LoginForm {
	email := textinput.New()
	email.Placeholder = "satoshi@blockchain.com"
	email.Prompt = "Email: "
	email.PromptStyle = InputPromptStyle
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.PromptStyle = InputPromptStyle
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	return LoginForm{inputs: []textinput.Model{email, password}}
}

// CycleFocus moves focus to the next input.
func (f *LoginForm) CycleFocus() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Values returns the entered email and password.
func (f *LoginForm) Values() (email, password string) {
	return strings.TrimSpace(f.inputs[0].Value()), f.inputs[1].Value()
}

// Update forwards a message to the focused input.
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Reset clears submission state after an attempt finishes.
func (f *LoginForm) Reset() {
	f.submitting = false
}

// View renders the login card centered on screen.
func (f LoginForm) View(width, height int) string {
	var content strings.Builder
	content.WriteString(logoLine("Sign In"))
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
		content.WriteString(WarningStyle.Render("Signing in..."))
	} else {
		content.WriteString(DimStyle.Render("enter sign in · tab next field · ctrl+s signup · ctrl+f forgot password"))
	}

	return centerBox(width, height, content.String())
}

// SignupForm is the signup view with live password requirement hints.
type SignupForm struct {
	inputs     []textinput.Model // 0: name, 1: email, 2: contact, 3: password, 4: confirm
	focus      int
	submitting bool
	errMsg     string
}

// NewSignupForm creates the signup form.
func NewSignupForm() SignupForm {
	name := textinput.New()
	name.Placeholder = "Satoshi Nakamoto"
	name.Prompt = "Name: "
	name.PromptStyle = InputPromptStyle
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "satoshi@blockchain.com"
	email.Prompt = "Email: "
	email.PromptStyle = InputPromptStyle
	email.CharLimit = 100
	email.Width = 40

	contact := textinput.New()
	contact.Placeholder = "+1 555 0100"
	contact.Prompt = "Contact: "
	contact.PromptStyle = InputPromptStyle
	contact.CharLimit = 30
	contact.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.PromptStyle = InputPromptStyle
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.Prompt = "Confirm: "
	confirm.PromptStyle = InputPromptStyle
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 100
	confirm.Width = 40

	return SignupForm{inputs: []textinput.Model{name, email, contact, password, confirm}}
}

// CycleFocus moves focus to the next input.
func (f *SignupForm) CycleFocus() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Update forwards a message to the focused input.
func (f SignupForm) Update(msg tea.Msg) (SignupForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Reset clears submission state after an attempt finishes.
func (f *SignupForm) Reset() {
	f.submitting = false
}

// passwordChecks are the signup password requirements, rendered live.
type passwordChecks struct {
	minLength   bool
	upper       bool
	lower       bool
	digit       bool
	specialChar bool
}

func checkPassword(password string) passwordChecks {
	c := passwordChecks{minLength: len(password) >= 8}
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		case strings.ContainsRune("!@#$%^&*(),.?\":{}|<>", r):
			c.specialChar = true
		}
	}
	return c
}

func (c passwordChecks) all() bool {
	return c.minLength && c.upper && c.lower && c.digit && c.specialChar
}

// Validate checks the form locally; a non-empty return is the validation
// message to surface (nothing is sent to the server).
func (f *SignupForm) Validate() string {
	name, email := strings.TrimSpace(f.inputs[0].Value()), strings.TrimSpace(f.inputs[1].Value())
	password, confirm := f.inputs[3].Value(), f.inputs[4].Value()

	switch {
	case name == "":
		return "name is required"
	case email == "":
		return "email is required"
	case password != confirm:
		return "passwords do not match"
	case !checkPassword(password).all():
		return "password does not meet the requirements"
	default:
		return ""
	}
}

// Values returns the signup payload fields.
func (f *SignupForm) Values() (name, email, contact, password string) {
	return strings.TrimSpace(f.inputs[0].Value()),
		strings.TrimSpace(f.inputs[1].Value()),
		strings.TrimSpace(f.inputs[2].Value()),
		f.inputs[3].Value()
}

// View renders the signup card with requirement hints.
func (f SignupForm) View(width, height int) string {
	var content strings.Builder
	content.WriteString(logoLine("Create Account"))
	content.WriteString("\n\n")

	if f.errMsg != "" {
		content.WriteString(ErrorStyle.Render(f.errMsg))
		content.WriteString("\n\n")
	}

	for _, in := range f.inputs {
		content.WriteString(in.View())
		content.WriteString("\n")
	}

	checks := checkPassword(f.inputs[3].Value())
	content.WriteString("\n")
	content.WriteString(requirementLine("8+ characters", checks.minLength))
	content.WriteString(requirementLine("uppercase letter", checks.upper))
	content.WriteString(requirementLine("lowercase letter", checks.lower))
	content.WriteString(requirementLine("digit", checks.digit))
	content.WriteString(requirementLine("special character", checks.specialChar))

	content.WriteString("\n")
	if f.submitting {
		content.WriteString(WarningStyle.Render("Creating account..."))
	} else {
		content.WriteString(DimStyle.Render("enter submit · tab next field · esc back to login"))
	}

	return centerBox(width, height, content.String())
}

func requirementLine(label string, met bool) string {
	if met {
		return ReqMetStyle.Render("  ✓ "+label) + "\n"
	}
	return ReqUnmetStyle.Render("  · "+label) + "\n"
}

// logoLine renders the app header used on the auth cards.
func logoLine(subtitle string) string {
	logo := lipgloss.NewStyle().
		Foreground(ColorMagenta).
		Bold(true).
		Render("BlockSim")
	return logo + SubtitleStyle.Render(" · "+subtitle)
}

// centerBox wraps content in the standard bordered card, centered.
func centerBox(width, height int, content string) string {
	box := FormBoxStyle.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
