package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	DefaultWidth  = 110
	DefaultHeight = 36
	MinWidth      = 60
	MaxWidth      = 130

	SidebarWidth = 26
)

// Layout holds layout calculations for the current terminal size.
type Layout struct {
	Width  int
	Height int

	// Calculated regions
	ContentWidth  int
	ContentHeight int
}

// NewLayout creates a new layout for the given terminal size.
func NewLayout(width, height int) Layout {
	if width < MinWidth {
		width = MinWidth
	}
	if width > MaxWidth {
		width = MaxWidth
	}

	l := Layout{
		Width:  width,
		Height: height,
	}

	// Content area: full width minus the sidebar and gap.
	l.ContentWidth = width - SidebarWidth - 3

	// Height: leave room for header and footer.
	l.ContentHeight = height - 6

	return l
}

// JoinVertical joins strings vertically with the specified gap, skipping
// empty parts.
func JoinVertical(gap int, parts ...string) string {
	spacer := strings.Repeat("\n", gap)
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, spacer)
}

// JoinHorizontal joins multi-line strings side by side with the given gap.
func JoinHorizontal(gap int, parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	partLines := make([][]string, len(parts))
	maxLines := 0
	for i, p := range parts {
		partLines[i] = strings.Split(p, "\n")
		if len(partLines[i]) > maxLines {
			maxLines = len(partLines[i])
		}
	}

	widths := make([]int, len(parts))
	for i, lines := range partLines {
		for _, line := range lines {
			w := lipgloss.Width(line)
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	spacer := strings.Repeat(" ", gap)
	var result strings.Builder
	for lineNum := 0; lineNum < maxLines; lineNum++ {
		for i, lines := range partLines {
			line := ""
			if lineNum < len(lines) {
				line = lines[lineNum]
			}
			lineWidth := lipgloss.Width(line)
			if lineWidth < widths[i] {
				line += strings.Repeat(" ", widths[i]-lineWidth)
			}
			result.WriteString(line)
			if i < len(parts)-1 {
				result.WriteString(spacer)
			}
		}
		if lineNum < maxLines-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// Truncate truncates text to fit within width, adding ellipsis if needed.
func Truncate(text string, width int) string {
	if width < 4 {
		return text
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for i := len(runes) - 1; i >= 0; i-- {
		truncated := string(runes[:i]) + "..."
		if lipgloss.Width(truncated) <= width {
			return truncated
		}
	}
	return "..."
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 10
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			test := current
			if current != "" {
				test += " "
			}
			test += word

			if lipgloss.Width(test) <= width {
				current = test
			} else {
				if current != "" {
					lines = append(lines, current)
				}
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}

	return lines
}
