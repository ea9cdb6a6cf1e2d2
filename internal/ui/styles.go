package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	ColorTextMuted = lipgloss.Color("#9CA3AF") // Gray
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)

	BoldStyle = lipgloss.NewStyle().Bold(true)
	DimStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
)
