package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorWarn    lipgloss.Color = "#f9e2af"
	colorDanger  lipgloss.Color = "#fab387"
	colorError   lipgloss.Color = "#f38ba8"
	colorSurface lipgloss.Color = "#313244"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder).Faint(true)

	cursorStyle = lipgloss.NewStyle().Background(colorSurface)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	toastStyle     = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	warnMediumStyle = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	warnStrongStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	blockedStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	verifiedStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
)
