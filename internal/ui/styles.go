package ui

import "github.com/charmbracelet/lipgloss"

// Colors follow the generated page.
const (
	colorRose  = lipgloss.Color("#D65A8D")
	colorPlum  = lipgloss.Color("#B84D76")
	colorBlush = lipgloss.Color("#FFDEDE")
	colorMuted = lipgloss.Color("#6B7280")
	colorError = lipgloss.Color("#FF4757")
	colorText  = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRose).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorPlum).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlush).
			Padding(1, 2)
)

// Success formats the one-line confirmation printed after a conversion.
func Success(outputFile string) string {
	return SuccessStyle.Render("Generated " + outputFile)
}

// Failure formats a one-line diagnostic.
func Failure(msg string) string {
	return ErrorStyle.Render("ERROR: " + msg)
}
