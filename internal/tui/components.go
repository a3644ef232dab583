package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionBox renders a titled box with content.
//
//	╭─ TITLE ──────────────────────────╮
//	│  content line 1                  │
//	│  content line 2                  │
//	╰──────────────────────────────────╯
func SectionBox(title, content string, width int, s Styles) string {
	if width < 20 {
		width = 60
	}

	titleText := " " + title + " "
	titleLen := lipgloss.Width(titleText)
	remainingWidth := width - 4 - titleLen
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	titleBar := "─" + s.Header.Render(titleText) + strings.Repeat("─", remainingWidth)

	box := lipgloss.NewStyle().
		Border(lipgloss.Border{
			Top:         "",
			Bottom:      "─",
			Left:        "│",
			Right:       "│",
			TopLeft:     "╭",
			TopRight:    "╮",
			BottomLeft:  "╰",
			BottomRight: "╯",
		}).
		BorderForeground(DefaultTheme.Border).
		Width(width - 2).
		Padding(0, 1)

	contentBox := box.Render(content)
	lines := strings.Split(contentBox, "\n")

	var result strings.Builder
	result.WriteString("╭" + titleBar + "╮\n")
	for i := 1; i < len(lines); i++ {
		result.WriteString(lines[i])
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// StatCard renders one dashboard counter: the value above its label in a
// rounded box.
func StatCard(label string, value int, width int, s Styles) string {
	if width < 12 {
		width = 16
	}
	inner := width - 4

	valueLine := padCenter(s.StatValue.Render(fmt.Sprintf("%d", value)), inner)
	labelLine := padCenter(s.StatLabel.Render(label), inner)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DefaultTheme.Border).
		Padding(0, 1)

	return card.Render(valueLine + "\n" + labelLine)
}

// TabBar renders a horizontal tab bar for the auth cards.
//
//	  Register  │  Login
func TabBar(tabs []string, selected int, s Styles) string {
	var parts []string
	for i, tab := range tabs {
		if i == selected {
			parts = append(parts, s.TabActive.Render(tab))
		} else {
			parts = append(parts, s.TabInactive.Render(tab))
		}
	}
	return "  " + strings.Join(parts, s.Muted.Render("  │  "))
}

// KeyHint represents a keyboard shortcut hint.
type KeyHint struct {
	Key   string
	Label string
}

// KeyHints renders a row of keyboard shortcuts.
//
//	[esc] Menu    [ctrl+x] Logout    [ctrl+c] Quit
func KeyHints(hints []KeyHint, s Styles) string {
	var parts []string
	for _, h := range hints {
		key := s.Info.Render("[" + h.Key + "]")
		label := s.Footer.Render(h.Label)
		parts = append(parts, key+" "+label)
	}
	return strings.Join(parts, "    ")
}

// Divider renders a horizontal divider line.
func Divider(width int, s Styles) string {
	return s.Muted.Render(strings.Repeat("─", width))
}

// StepIndicator renders the wizard progress line.
//
//	● Cattle Details ─ ○ Prediction ─ ○ Result
func StepIndicator(labels []string, current int, s Styles) string {
	var parts []string
	for i, label := range labels {
		switch {
		case i < current:
			parts = append(parts, s.Success.Render("● "+label))
		case i == current:
			parts = append(parts, s.Title.Render("● "+label))
		default:
			parts = append(parts, s.Muted.Render("○ "+label))
		}
	}
	return strings.Join(parts, s.Muted.Render(" ─ "))
}

// Helper functions

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
