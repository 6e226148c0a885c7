package main

import "github.com/charmbracelet/lipgloss"

// Status labels for human-readable reports. lipgloss drops the colors
// when stdout is not a terminal.
var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func labelOK() string    { return okStyle.Render("[OK]") }
func labelWarn() string  { return warnStyle.Render("[WARN]") }
func labelError() string { return errorStyle.Render("[ERROR]") }

// swatch renders a two-cell block in color, or spaces when color is empty.
func swatch(color string) string {
	if color == "" {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}
