package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgSecondary = lipgloss.Color("#21252B")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true).
			PaddingLeft(1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Card styles (stats, panels, forms)
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Block/transaction list styles
	BlockIndexStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	HashStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	AmountStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	RewardStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	// Form styles
	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusActiveStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	// Tab bar
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted).
				Padding(0, 1)

	// Toast styles
	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorGreen).
				Foreground(ColorGreen).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRed).
			Foreground(ColorRed).
			Padding(0, 1)

	// Mining log styles
	LogTimeStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	LogTextStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	// Password requirement hints
	ReqMetStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ReqUnmetStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// Success styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	// Warning styles
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
