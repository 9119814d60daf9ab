package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blocksim/tui-go/internal/api"
)

// miningDifficulty matches the server's fixed proof-of-work difficulty;
// the API does not expose it.
const miningDifficulty = 4

// Dashboard shows ledger stats, the most recent blocks, and the pending
// transaction queue. Data arrives via the combined stats poll.
type Dashboard struct {
	blocks  []api.Block
	pending []api.Transaction
	loaded  bool
}

// NewDashboard creates an empty dashboard awaiting its first poll.
func NewDashboard() Dashboard {
	return Dashboard{}
}

// SetData replaces the dashboard data after a successful poll.
func (d *Dashboard) SetData(blocks []api.Block, pending []api.Transaction) {
	d.blocks = blocks
	d.pending = pending
	d.loaded = true
}

// Loaded reports whether at least one poll has completed.
func (d *Dashboard) Loaded() bool {
	return d.loaded
}

func (d *Dashboard) totalTransactions() int {
	n := 0
	for _, b := range d.blocks {
		n += len(b.Transactions)
	}
	return n
}

// View renders the dashboard.
func (d Dashboard) View(width, height int) string {
	if !d.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			DimStyle.Render("Loading ledger..."))
	}

	latest := "-"
	if len(d.blocks) > 0 {
		latest = fmt.Sprintf("#%d", d.blocks[len(d.blocks)-1].Index)
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Blocks", fmt.Sprintf("%d", len(d.blocks))),
		statCard("Transactions", fmt.Sprintf("%d", d.totalTransactions())),
		statCard("Pending", fmt.Sprintf("%d", len(d.pending))),
		statCard("Latest Block", latest),
		statCard("Difficulty", fmt.Sprintf("%d", miningDifficulty)),
	)

	var recent strings.Builder
	recent.WriteString(CardTitleStyle.Render("Recent Blocks"))
	recent.WriteString("\n")
	shown := d.blocks
	if len(shown) > 5 {
		shown = shown[len(shown)-5:]
	}
	// newest first
	for i := len(shown) - 1; i >= 0; i-- {
		b := shown[i]
		recent.WriteString(fmt.Sprintf("%s  %s  %s\n",
			BlockIndexStyle.Render(fmt.Sprintf("#%d", b.Index)),
			StatLabelStyle.Render(fmt.Sprintf("%d tx", len(b.Transactions))),
			HashStyle.Render(shortHash(b.Hash)),
		))
	}

	var queue strings.Builder
	queue.WriteString(CardTitleStyle.Render("Pending Queue"))
	queue.WriteString("\n")
	if len(d.pending) == 0 {
		queue.WriteString(DimStyle.Render("no pending transactions"))
		queue.WriteString("\n")
	}
	for _, tx := range d.pending {
		queue.WriteString(renderTransaction(tx))
		queue.WriteString("\n")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		CardStyle.Render(recent.String()),
		CardStyle.Render(queue.String()),
	)

	hint := DimStyle.Render("m mine pending transactions · r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, stats, panels, hint)
}

func statCard(label, value string) string {
	return CardStyle.Render(
		StatValueStyle.Render(value) + "\n" + StatLabelStyle.Render(label))
}

// renderTransaction formats one transaction line. Reward payouts carry
// no sender and get a distinct color.
func renderTransaction(tx api.Transaction) string {
	amount := AmountStyle.Render(fmt.Sprintf("%.2f", tx.Amount))
	if tx.Sender == nil {
		amount = RewardStyle.Render(fmt.Sprintf("%.2f", tx.Amount))
	}
	return fmt.Sprintf("%s → %s  %s",
		LogTextStyle.Render(tx.SenderLabel()),
		LogTextStyle.Render(tx.Recipient),
		amount)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12] + "…"
	}
	return h
}
