package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the portal TUI. Pasture-inspired
// greens over a warm dark background.
type Theme struct {
	// Backgrounds
	BgDark   lipgloss.Color // deep background
	BgPanel  lipgloss.Color // panel/box background
	BgAccent lipgloss.Color // selection background

	// Text
	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color

	// Borders
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	// Semantic colors
	Accent  lipgloss.Color // primary accent (green)
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// DefaultTheme is the portal's dark theme.
var DefaultTheme = Theme{
	BgDark:   lipgloss.Color("#171c19"),
	BgPanel:  lipgloss.Color("#20281f"),
	BgAccent: lipgloss.Color("#3a4a36"),

	TextPrimary: lipgloss.Color("#d3e6cf"),
	TextDim:     lipgloss.Color("#7d9476"),
	TextMuted:   lipgloss.Color("#4c5c48"),

	Border:        lipgloss.Color("#3a4a36"),
	BorderFocused: lipgloss.Color("#8fce6b"),

	Accent:  lipgloss.Color("#8fce6b"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7dcfff"),
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Base    lipgloss.Style
	Dim     lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	MenuItem       lipgloss.Style
	MenuActive     lipgloss.Style
	MenuCursor     lipgloss.Style
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style
	StatValue      lipgloss.Style
	StatLabel      lipgloss.Style
	ResultPositive lipgloss.Style
	ResultNegative lipgloss.Style
	Footer         lipgloss.Style
	Avatar         lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Base:    lipgloss.NewStyle().Foreground(t.TextPrimary),
		Dim:     lipgloss.NewStyle().Foreground(t.TextDim),
		Muted:   lipgloss.NewStyle().Foreground(t.TextMuted),
		Bold:    lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),
		Title:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(t.Accent),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(t.Info),

		MenuItem:   lipgloss.NewStyle().Foreground(t.TextDim).PaddingLeft(1),
		MenuActive: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).PaddingLeft(1),
		MenuCursor: lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.BgAccent).PaddingLeft(1),

		TabActive:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(t.TextMuted),

		StatValue: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		StatLabel: lipgloss.NewStyle().Foreground(t.TextDim),

		ResultPositive: lipgloss.NewStyle().
			Foreground(t.Warning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Error).
			Padding(0, 2),
		ResultNegative: lipgloss.NewStyle().
			Foreground(t.Success).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Success).
			Padding(0, 2),

		Footer: lipgloss.NewStyle().Foreground(t.TextMuted),
		Avatar: lipgloss.NewStyle().
			Foreground(t.BgDark).
			Background(t.Accent).
			Bold(true).
			Padding(0, 1),
	}
}

// DefaultStyles is the style set for the default theme.
var DefaultStyles = NewStyles(DefaultTheme)
