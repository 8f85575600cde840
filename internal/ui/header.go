package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jswain/billfold/internal/status"
)

// renderHeader renders the top status bar: logo, connectivity, invoice count,
// refresh age, and the single operation status message.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("billfold"),
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.DangerText.Render("● OFFLINE"))
	} else if m.snapshot.LastError != nil {
		parts = append(parts, styles.WarningText.Render("● RETRYING"))
	} else {
		parts = append(parts, styles.SuccessText.Render("● ONLINE"))
	}

	parts = append(parts,
		styles.MutedText.Render("Invoices:")+" "+
			styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Invoices))))

	if timeStr := m.formatRefreshAge(); timeStr != "" {
		parts = append(parts, styles.MutedText.Render(timeStr))
	}

	if msg := m.renderStatusMessage(styles); msg != "" {
		parts = append(parts, msg)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderStatusMessage formats the shared status slot, colored by kind.
func (m Model) renderStatusMessage(styles Styles) string {
	if m.message.IsZero() {
		return ""
	}
	text := truncate(m.message.Text, maxMessageWidth(m.width))
	switch m.message.Kind {
	case status.Pending:
		return styles.WarningText.Render(m.spin.View() + text)
	case status.Success:
		return styles.SuccessText.Render("✓ " + text)
	case status.Error:
		return styles.DangerText.Render("✗ " + text)
	default:
		return styles.Text.Render(text)
	}
}

func maxMessageWidth(width int) int {
	if width <= 0 {
		return 60
	}
	max := width / 2
	if max < 24 {
		max = 24
	}
	return max
}

func (m Model) formatRefreshAge() string {
	when := m.snapshot.LastUpdated
	if when.IsZero() {
		return ""
	}
	age := time.Since(when)
	timeStr := when.Format("15:04:05")
	if age < time.Minute {
		timeStr += " (now)"
	} else if age < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(age.Minutes()))
	} else if age < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(age.Hours()))
	}
	return timeStr
}

// renderMain renders the full frame: header, both panes, command bar.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	formWidth := (m.width * 3) / 5
	listWidth := m.width - formWidth
	paneHeight := m.height - 4
	if paneHeight < 8 {
		paneHeight = 8
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCompose(formWidth-2, paneHeight),
		m.renderList(listWidth-2, paneHeight),
	)
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderCommandBar renders the bottom hint bar for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.focusedPane == PaneCompose {
		commands = []cmd{
			{"tab", "Next field"},
			{"ctrl+a", "Add item"},
			{"ctrl+x", "Remove item"},
			{"ctrl+s", "Create"},
			{"ctrl+c", "Quit"},
		}
	} else {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Download"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"T", m.theme.Name},
			{"?", "Help"},
			{"ctrl+c", "Quit"},
		}
	}

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+styles.FaintText.Render(":")+styles.MutedText.Render(c.desc))
	}
	return styles.Header.Width(m.width).Render(strings.Join(segments, "  "))
}
