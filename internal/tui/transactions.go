package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blocksim/tui-go/internal/api"
)

// Transactions is the transaction view: the pending queue plus a form
// to submit a new transaction.
type Transactions struct {
	pending []api.Transaction
	loaded  bool

	inputs     []textinput.Model // 0: sender, 1: recipient, 2: amount
	focus      int
	editing    bool
	submitting bool
	errMsg     string
}

// NewTransactions creates the transaction view.
func NewTransactions() Transactions {
	sender := textinput.New()
	sender.Placeholder = "empty for reward payout"
	sender.Prompt = "Sender: "
	sender.PromptStyle = InputPromptStyle
	sender.CharLimit = 100
	sender.Width = 34

	recipient := textinput.New()
	recipient.Placeholder = "miner1"
	recipient.Prompt = "Recipient: "
	recipient.PromptStyle = InputPromptStyle
	recipient.CharLimit = 100
	recipient.Width = 34

	amount := textinput.New()
	amount.Placeholder = "10.0"
	amount.Prompt = "Amount: "
	amount.PromptStyle = InputPromptStyle
	amount.CharLimit = 20
	amount.Width = 34

	return Transactions{inputs: []textinput.Model{sender, recipient, amount}}
}

// SetPending replaces the queue after a successful poll.
func (t *Transactions) SetPending(txs []api.Transaction) {
	t.pending = txs
	t.loaded = true
}

// Editing reports whether the form currently owns the keyboard. View
// switching keys are suspended while a field is focused so digits can be
// typed into the amount.
func (t *Transactions) Editing() bool {
	return t.editing
}

// StartEditing focuses the first form field.
func (t *Transactions) StartEditing() {
	t.editing = true
	t.focus = 0
	t.inputs[0].Focus()
}

// StopEditing blurs the form and returns the keyboard to navigation.
func (t *Transactions) StopEditing() {
	t.editing = false
	t.inputs[t.focus].Blur()
	t.errMsg = ""
}

// CycleFocus moves focus to the next form input.
func (t *Transactions) CycleFocus() {
	t.inputs[t.focus].Blur()
	t.focus = (t.focus + 1) % len(t.inputs)
	t.inputs[t.focus].Focus()
}

// Update forwards a message to the focused form input.
func (t Transactions) Update(msg tea.Msg) (Transactions, tea.Cmd) {
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	return t, cmd
}

// Build validates the form and produces the transaction to submit. An
// empty sender becomes a null-sender reward payout on the wire.
func (t *Transactions) Build() (api.Transaction, string) {
	recipient := strings.TrimSpace(t.inputs[1].Value())
	if recipient == "" {
		return api.Transaction{}, "recipient is required"
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(t.inputs[2].Value()), 64)
	if err != nil {
		return api.Transaction{}, "amount must be a number"
	}
	if amount <= 0 {
		return api.Transaction{}, "amount must be positive"
	}

	tx := api.Transaction{Recipient: recipient, Amount: amount}
	if sender := strings.TrimSpace(t.inputs[0].Value()); sender != "" {
		tx.Sender = &sender
	}
	return tx, ""
}

// ClearForm resets the form after a successful submit.
func (t *Transactions) ClearForm() {
	for i := range t.inputs {
		t.inputs[i].SetValue("")
	}
	t.inputs[t.focus].Blur()
	t.editing = false
	t.errMsg = ""
	t.submitting = false
}

// Reset clears submission state after an attempt finishes.
func (t *Transactions) Reset() {
	t.submitting = false
}

// View renders the queue and the form side by side.
func (t Transactions) View(width, height int) string {
	var queue strings.Builder
	queue.WriteString(CardTitleStyle.Render("Pending Transactions"))
	queue.WriteString("\n")
	switch {
	case !t.loaded:
		queue.WriteString(DimStyle.Render("loading..."))
		queue.WriteString("\n")
	case len(t.pending) == 0:
		queue.WriteString(DimStyle.Render("no pending transactions"))
		queue.WriteString("\n")
	default:
		for _, tx := range t.pending {
			queue.WriteString(renderTransaction(tx))
			queue.WriteString("\n")
		}
	}

	var form strings.Builder
	form.WriteString(CardTitleStyle.Render("New Transaction"))
	form.WriteString("\n")
	if t.errMsg != "" {
		form.WriteString(ErrorStyle.Render(t.errMsg))
		form.WriteString("\n")
	}
	for _, in := range t.inputs {
		form.WriteString(in.View())
		form.WriteString("\n")
	}
	switch {
	case t.submitting:
		form.WriteString(WarningStyle.Render("Submitting..."))
	case t.editing:
		form.WriteString(DimStyle.Render("enter submit · tab next field · esc cancel"))
	default:
		form.WriteString(DimStyle.Render("tab fill in the form"))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		CardStyle.Render(queue.String()),
		CardStyle.Render(form.String()),
	)
	count := StatLabelStyle.Render(fmt.Sprintf("%d pending", len(t.pending)))
	return lipgloss.JoinVertical(lipgloss.Left, panels, count)
}
