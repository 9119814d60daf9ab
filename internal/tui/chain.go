package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blocksim/tui-go/internal/api"
)

// Chain is the block explorer view: the full chain in a scrollable
// viewport plus the last validation verdict.
type Chain struct {
	blocks     []api.Block
	loaded     bool
	vp         viewport.Model
	validation *api.ValidationResult
	validating bool
}

// NewChain creates an empty chain explorer.
func NewChain() Chain {
	return Chain{vp: viewport.New(0, 0)}
}

// SetBlocks replaces the chain after a successful poll and refreshes the
// viewport content, preserving the scroll position.
func (c *Chain) SetBlocks(blocks []api.Block) {
	c.blocks = blocks
	c.loaded = true
	c.vp.SetContent(c.renderBlocks())
}

// SetValidation records a chain validation verdict.
func (c *Chain) SetValidation(result api.ValidationResult) {
	c.validation = &result
	c.validating = false
}

// Resize adjusts the viewport to the available area.
func (c *Chain) Resize(width, height int) {
	c.vp.Width = width
	c.vp.Height = height - 4
	if c.vp.Height < 1 {
		c.vp.Height = 1
	}
}

// Update forwards scrolling keys to the viewport.
func (c Chain) Update(msg tea.Msg) (Chain, tea.Cmd) {
	var cmd tea.Cmd
	c.vp, cmd = c.vp.Update(msg)
	return c, cmd
}

func (c *Chain) renderBlocks() string {
	var b strings.Builder
	// newest first
	for i := len(c.blocks) - 1; i >= 0; i-- {
		blk := c.blocks[i]
		b.WriteString(BlockIndexStyle.Render(fmt.Sprintf("Block #%d", blk.Index)))
		b.WriteString("  ")
		b.WriteString(StatLabelStyle.Render(time.UnixMilli(blk.Timestamp).Format("2006-01-02 15:04:05")))
		b.WriteString("\n")
		b.WriteString(HashStyle.Render("  hash " + blk.Hash))
		b.WriteString("\n")
		b.WriteString(HashStyle.Render("  prev " + blk.PreviousHash))
		b.WriteString("\n")
		b.WriteString(StatLabelStyle.Render(fmt.Sprintf("  nonce %d", blk.Nonce)))
		b.WriteString("\n")
		for _, tx := range blk.Transactions {
			b.WriteString("  ")
			b.WriteString(renderTransaction(tx))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the explorer.
func (c Chain) View(width, height int) string {
	if !c.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			DimStyle.Render("Loading chain..."))
	}

	header := CardTitleStyle.Render(fmt.Sprintf("Chain Explorer · %d blocks", len(c.blocks)))

	var verdict string
	switch {
	case c.validating:
		verdict = WarningStyle.Render("Validating chain...")
	case c.validation == nil:
		verdict = DimStyle.Render("v validate chain · ↑/↓ scroll")
	case c.validation.Valid:
		verdict = SuccessStyle.Render("✓ chain is valid")
	default:
		msg := c.validation.Message
		if msg == "" {
			msg = "chain is invalid"
		}
		verdict = ErrorStyle.Render("✗ " + msg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, c.vp.View(), verdict)
}
