package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorBlue  = lipgloss.Color("75")  // Light blue - links
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// Status lines are styled for the writer they go to, so redirected output
// carries no escape sequences.

// printMessage prints msg in green with nothing else on the line.
func printMessage(w io.Writer, msg string) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(colorGreen)
	fmt.Fprintln(w, style.Render(msg))
}

// printFailure prints msg in red with nothing else on the line.
func printFailure(w io.Writer, msg string) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(colorRed)
	fmt.Fprintln(w, style.Render(msg))
}

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	r := lipgloss.NewRenderer(w)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, r.NewStyle().Foreground(colorGreen).Render(iconSuccess)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	r := lipgloss.NewRenderer(w)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, r.NewStyle().Foreground(colorGray).Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	r := lipgloss.NewRenderer(w)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+r.NewStyle().Foreground(colorDim).Render(msg))
}
