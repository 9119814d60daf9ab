package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

// Toast is one transient, non-blocking notification. Errors and successes
// surface here; nothing in the app blocks on user acknowledgement.
type Toast struct {
	ID      int
	Message string
	IsError bool
}

// toastExpiredMsg removes a toast after its display time.
type toastExpiredMsg struct {
	id int
}

// Toaster holds the active notifications for the status area.
type Toaster struct {
	toasts []Toast
	nextID int
}

// Push adds a notification and returns the command that expires it.
func (t *Toaster) Push(message string, isError bool) tea.Cmd {
	t.nextID++
	id := t.nextID
	t.toasts = append(t.toasts, Toast{ID: id, Message: message, IsError: isError})

	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Expire removes the toast with the given id.
func (t *Toaster) Expire(id int) {
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// Active returns the notifications currently shown.
func (t *Toaster) Active() []Toast {
	return t.toasts
}

// View renders the stacked notifications.
func (t *Toaster) View() string {
	if len(t.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(t.toasts))
	for _, toast := range t.toasts {
		style := ToastSuccessStyle
		if toast.IsError {
			style = ToastErrorStyle
		}
		rendered = append(rendered, style.Render(toast.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
