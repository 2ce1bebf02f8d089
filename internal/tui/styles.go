// Package tui holds the Bubble Tea models and lipgloss rendering used by the
// dashboard, login and calculator commands.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette, taken from the dashboard's green theme.
const (
	ColorPrimary  = lipgloss.Color("#1a5f3f")
	ColorAccent   = lipgloss.Color("#2d9d5e")
	ColorOK       = lipgloss.Color("#4db877")
	ColorWarning  = lipgloss.Color("#e6a23c")
	ColorCritical = lipgloss.Color("#d9534f")
	ColorMuted    = lipgloss.Color("#8a8a8a")
	ColorText     = lipgloss.Color("#f2f2f2")
)

// Arrows used for trends and gap status.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
)

// Shared styles.
//
//nolint:gochecknoglobals // Immutable style definitions.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorAccent).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorPrimary)
)

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
	tableHeight   = 10
	borderPadding = 4
)
