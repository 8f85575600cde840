package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jswain/billfold/internal/status"
)

// handleConfirmKey processes keys while the delete confirmation modal is
// open. Nothing reaches the network until the user confirms; cancelling
// leaves the list exactly as it was.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		inv := m.confirmDelete
		m.confirmDelete = nil
		if inv == nil {
			return m, nil
		}
		m.message = status.Pendingf("Deleting invoice...")
		m.pendingOps++
		return m, tea.Batch(m.deleteInvoiceCmd(inv.ID), m.spin.Tick)

	case "n", "esc":
		m.confirmDelete = nil
		return m, nil
	}
	return m, nil
}

// renderConfirmDelete renders the destructive-action confirmation overlay.
func (m Model) renderConfirmDelete() string {
	styles := m.theme.Styles()
	inv := m.confirmDelete

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete invoice?"))
	b.WriteString("\n\n")
	if inv != nil {
		b.WriteString(styles.Text.Render(fmt.Sprintf("Invoice #%d  •  %s  •  %s",
			inv.InvoiceID, inv.CustomerName(), formatMoney(inv.Total))))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.MutedText.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" delete    "))
	b.WriteString(styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel"))

	box := styles.PaneFocus.
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
