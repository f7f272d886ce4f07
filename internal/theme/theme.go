// Package theme styles the CLI output. Same "Crush" palette as the
// rt82display tool for a consistent look across the RT82 utilities.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess   = lipgloss.Color("#12C78F")
	colorError     = lipgloss.Color("#EB4268")
	colorWarning   = lipgloss.Color("#E8FE96")
	colorInfo      = lipgloss.Color("#00A4FF")
	colorPrimary   = lipgloss.Color("#6B50FF")
	colorTertiary  = lipgloss.Color("#68FFD6")
	colorMuted     = lipgloss.Color("#858392")
	colorHighlight = lipgloss.Color("#F1EFEF")
)

var (
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	infoStyle      = lipgloss.NewStyle().Foreground(colorInfo)
	primaryStyle   = lipgloss.NewStyle().Foreground(colorPrimary)
	tertiaryStyle  = lipgloss.NewStyle().Foreground(colorTertiary)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)

func Success(format string, a ...any) {
	fmt.Println(successStyle.Render("✔") + " " + fmt.Sprintf(format, a...))
}

func Error(format string, a ...any) {
	fmt.Println(errorStyle.Render("✘") + " " + fmt.Sprintf(format, a...))
}

func Warning(format string, a ...any) {
	fmt.Println(warningStyle.Render("⚠") + " " + fmt.Sprintf(format, a...))
}

func Info(format string, a ...any) {
	fmt.Println(infoStyle.Render("›") + " " + fmt.Sprintf(format, a...))
}

func Muted(format string, a ...any) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf(format, a...)))
}

// Highlight returns s styled for emphasis inside another message.
func Highlight(s string) string {
	return highlightStyle.Render(s)
}

// Field prints an aligned "key: value" line for status output.
func Field(key, value string) {
	fmt.Printf("  %s  %s\n", tertiaryStyle.Render(key+":"), value)
}

// Header prints a section rule with the title embedded.
func Header(title string) {
	const width = 56
	label := " " + title + " "
	fill := width - lipgloss.Width(label) - 4
	if fill < 0 {
		fill = 0
	}
	fmt.Println()
	fmt.Println(primaryStyle.Render("──" + label + strings.Repeat("─", fill+2)))
	fmt.Println()
}

// Banner prints the program banner.
func Banner() {
	fmt.Println(bannerStyle.Render("☁ " + primaryStyle.Render("RT82 Weather") + " › Weather on your keyboard"))
}
