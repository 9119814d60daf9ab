package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/mining"
)

// Mine is the mining view: a simulated progress bar, the recent mining
// log, an editable miner address, and the miner's balance.
type Mine struct {
	sim         *mining.Simulator
	bar         progress.Model
	addr        textinput.Model
	defaultAddr string
	editing     bool
	balance     *api.Balance
	lastBlock   *api.Block
}

// NewMine creates the mining view around the given simulator. The miner
// address starts from config and can be edited per run.
func NewMine(sim *mining.Simulator, minerAddress string) Mine {
	bar := progress.New(
		progress.WithGradient(string(ColorBlue), string(ColorMagenta)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	addr := textinput.New()
	addr.Prompt = "Miner: "
	addr.PromptStyle = InputPromptStyle
	addr.CharLimit = 100
	addr.Width = 30
	addr.SetValue(minerAddress)

	return Mine{sim: sim, bar: bar, addr: addr, defaultAddr: minerAddress}
}

// Address returns the miner address rewards go to, falling back to the
// configured default when the field is emptied.
func (m *Mine) Address() string {
	if addr := strings.TrimSpace(m.addr.Value()); addr != "" {
		return addr
	}
	return m.defaultAddr
}

// Editing reports whether the address field owns the keyboard.
func (m *Mine) Editing() bool {
	return m.editing
}

// StartEditing focuses the address field.
func (m *Mine) StartEditing() {
	m.editing = true
	m.addr.Focus()
}

// StopEditing blurs the address field.
func (m *Mine) StopEditing() {
	m.editing = false
	m.addr.Blur()
}

// Update forwards a message to the address input.
func (m Mine) Update(msg tea.Msg) (Mine, tea.Cmd) {
	var cmd tea.Cmd
	m.addr, cmd = m.addr.Update(msg)
	return m, cmd
}

// SetBalance records the latest balance lookup result.
func (m *Mine) SetBalance(b api.Balance) {
	m.balance = &b
}

// SetMinedBlock records the most recently mined block for display.
func (m *Mine) SetMinedBlock(b api.Block) {
	m.lastBlock = &b
}

// View renders the mining panel.
func (m Mine) View(width, height int) string {
	var content strings.Builder
	content.WriteString(CardTitleStyle.Render("Mining"))
	content.WriteString("\n")
	content.WriteString(m.addr.View())
	if m.balance != nil {
		content.WriteString(StatLabelStyle.Render("  ·  balance "))
		content.WriteString(StatValueStyle.Render(fmt.Sprintf("%.2f", m.balance.Balance)))
	}
	content.WriteString("\n\n")

	content.WriteString(m.bar.ViewAs(m.sim.Percent() / 100))
	content.WriteString(fmt.Sprintf("  %3.0f%%", m.sim.Percent()))
	content.WriteString("\n\n")

	for _, entry := range m.sim.Logs() {
		content.WriteString(LogTimeStyle.Render(entry.Time.Format("15:04:05")))
		content.WriteString("  ")
		content.WriteString(LogTextStyle.Render(entry.Message))
		content.WriteString("\n")
	}

	if m.lastBlock != nil {
		content.WriteString("\n")
		content.WriteString(SuccessStyle.Render(fmt.Sprintf("Last mined: block #%d (%s)",
			m.lastBlock.Index, shortHash(m.lastBlock.Hash))))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	switch {
	case m.sim.Running():
		content.WriteString(WarningStyle.Render("Mining in progress..."))
	case m.editing:
		content.WriteString(DimStyle.Render("enter done · esc cancel"))
	default:
		content.WriteString(DimStyle.Render("m start mining · tab edit miner · r refresh balance"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		CardStyle.Render(content.String()))
}
