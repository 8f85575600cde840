package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []key.Binding
}

// helpSections groups the key bindings for the overlay.
func (m Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{"Form", []key.Binding{k.Tab, k.ShiftTab, k.AddItem, k.RemoveItem, k.Submit}},
		{"Invoice list", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Generate, k.Delete, k.Refresh}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the help overlay. Any key closes it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(16)

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.keys {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	box := styles.Pane.Padding(1, 2).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
