package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jswain/billfold/internal/status"
	"github.com/jswain/billfold/internal/store"
)

// handleListKey processes keys while the invoice list pane has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focusedPane = PaneCompose
		m.focusField(0)
		return m, nil

	case "shift+tab", "esc":
		m.focusedPane = PaneCompose
		m.focusField(len(m.inputs) - 1)
		return m, nil

	case "?":
		m.showHelp = true
		return m, nil

	case "q":
		return m, tea.Quit

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = savePrefs(m.prefsPath, m.theme.Name)
		}
		return m, nil

	case "r":
		return m, m.refreshListCmd()

	case "j", "down":
		if m.selectedRow < len(m.snapshot.Invoices)-1 {
			m.selectedRow++
		}
		return m, nil

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.selectedRow = 0
		return m, nil

	case "G", "end":
		if n := len(m.snapshot.Invoices); n > 0 {
			m.selectedRow = n - 1
		}
		return m, nil

	case "d":
		if inv := m.selectedInvoice(); inv != nil {
			// Destructive action: nothing is dispatched until the user
			// confirms in the modal.
			m.confirmDelete = inv
		}
		return m, nil

	case "enter":
		if inv := m.selectedInvoice(); inv != nil {
			m.message = status.Pendingf("Generating document...")
			m.pendingOps++
			return m, tea.Batch(m.generateDocumentCmd(inv.ID), m.spin.Tick)
		}
		return m, nil
	}

	return m, nil
}

// selectedInvoice returns a copy of the invoice under the cursor, or nil.
func (m Model) selectedInvoice() *store.Invoice {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Invoices) {
		return nil
	}
	inv := m.snapshot.Invoices[m.selectedRow]
	return &inv
}

func (m *Model) clampSelection() {
	if n := len(m.snapshot.Invoices); m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// renderList renders the invoice list pane.
func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.PaneTitle.Render(fmt.Sprintf("Invoices (%d)", len(m.snapshot.Invoices))))
	b.WriteString("\n\n")

	if len(m.snapshot.Invoices) == 0 {
		b.WriteString(styles.MutedText.Render("No invoices yet"))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Create your first invoice using the form"))
	} else {
		// Three display lines per invoice plus a blank separator.
		rowHeight := 4
		visible := (height - 2) / rowHeight
		if visible < 1 {
			visible = 1
		}
		start := 0
		if m.selectedRow >= visible {
			start = m.selectedRow - visible + 1
		}
		end := min(start+visible, len(m.snapshot.Invoices))

		for i := start; i < end; i++ {
			b.WriteString(m.renderInvoiceRow(m.snapshot.Invoices[i], i == m.selectedRow, width-4, styles))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter download  •  d delete  •  r refresh"))

	pane := styles.Pane
	if m.focusedPane == PaneList {
		pane = styles.PaneFocus
	}
	return pane.Width(width).Height(height).Render(b.String())
}

func (m Model) renderInvoiceRow(inv store.Invoice, selected bool, width int, styles Styles) string {
	title := fmt.Sprintf("Invoice #%d", inv.InvoiceID)
	amount := formatMoney(inv.Total)

	head := styles.Text.Bold(true).Render(truncate(title, width-len(amount)-2)) +
		"  " + styles.AccentText.Render(amount)

	detail := fmt.Sprintf("%s  •  %s", inv.CustomerName(), inv.Phone)
	meta := fmt.Sprintf("%d item(s)", inv.ItemsCount)
	if created := inv.ParsedCreatedAt(); !created.IsZero() {
		meta += "  •  " + created.Format("2006-01-02 15:04")
	}

	lines := []string{
		head,
		styles.MutedText.Render(truncate(detail, width)),
		styles.FaintText.Render(truncate(meta, width)),
	}

	row := strings.Join(lines, "\n")
	if selected {
		marker := styles.AccentText.Render("▍")
		var marked []string
		for _, line := range strings.Split(row, "\n") {
			marked = append(marked, marker+" "+line)
		}
		return strings.Join(marked, "\n") + "\n"
	}
	var padded []string
	for _, line := range strings.Split(row, "\n") {
		padded = append(padded, "  "+line)
	}
	return strings.Join(padded, "\n") + "\n"
}
