package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette shared by every command.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared across command output.
var (
	// StyleTitle for section headings (stats, explore).
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for the selected event and other emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for cycle notices and other soft failures.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for event identifiers and data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpin    = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// printSuccess prints a checkmarked status line.
func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// printError prints a failed status line.
func printError(format string, args ...any) {
	fmt.Println(styleFail.Render("✗") + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning line.
func printWarning(format string, args ...any) {
	fmt.Println(StyleWarning.Render("!") + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints a neutral status line.
func printInfo(format string, args ...any) {
	fmt.Println(styleNote.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a produced-file line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value with an aligned label column.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printGraphStats prints a one-line graph summary.
func printGraphStats(events, dependencies int, cached bool) {
	fmt.Println("  " + StyleDim.Render(graphStatsLine(events, dependencies, cached)))
}

// graphStatsLine formats the event and dependency counts with the artifact
// provenance ("cached" when every artifact came from the cache).
func graphStatsLine(events, dependencies int, cached bool) string {
	provenance := "fresh"
	if cached {
		provenance = "cached"
	}
	return fmt.Sprintf("%d events · %d dependencies · %s", events, dependencies, provenance)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
