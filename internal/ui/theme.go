package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	Pane      lipgloss.Style
	PaneFocus lipgloss.Style
	PaneTitle lipgloss.Style
}

// Styles builds the style set for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PaneFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Background:    "#282a36",
		Surface:       "#44475a",
		Border:        "#6272a4",
		BorderFocus:   "#bd93f9",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Faint:         "#44475a",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
		Info:          "#8be9fd",
	},
	{
		Name:          "Nord",
		Background:    "#2e3440",
		Surface:       "#3b4252",
		Border:        "#4c566a",
		BorderFocus:   "#88c0d0",
		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",
		Text:          "#eceff4",
		Muted:         "#616e88",
		Faint:         "#4c566a",
		Accent:        "#88c0d0",
		Success:       "#a3be8c",
		Warning:       "#ebcb8b",
		Danger:        "#bf616a",
		Info:          "#81a1c1",
	},
	{
		Name:          "Gruvbox",
		Background:    "#282828",
		Surface:       "#3c3836",
		Border:        "#665c54",
		BorderFocus:   "#fabd2f",
		SelectionBg:   "#504945",
		SelectionText: "#ebdbb2",
		Text:          "#ebdbb2",
		Muted:         "#928374",
		Faint:         "#665c54",
		Accent:        "#fabd2f",
		Success:       "#b8bb26",
		Warning:       "#fe8019",
		Danger:        "#fb4934",
		Info:          "#83a598",
	},
}

// GetTheme returns the theme with the given name, or the first theme when the
// name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping
// around.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
