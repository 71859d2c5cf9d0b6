package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Ellipsize shortens s to at most n runes, marking the cut with "…".
func Ellipsize(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// OneLine collapses line breaks so multiline values fit a table cell.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatProblems renders validation problems as an indented, numbered list.
func FormatProblems(title string, problems []error) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render(title) + "\n")
	for i, p := range problems {
		fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render(fmt.Sprintf("%d.", i+1)), p.Error())
	}
	return b.String()
}

// Plural picks the singular or plural noun for n.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
