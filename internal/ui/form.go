package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jswain/billfold/internal/composer"
	"github.com/jswain/billfold/internal/status"
)

// Field layout: four fixed fields (first name, last name, phone, tax rate)
// followed by three fields per line item, in item order.
const (
	fixedFieldCount = 4
	itemFieldCount  = 3

	fieldFirstName = 0
	fieldLastName  = 1
	fieldPhone     = 2
	fieldTaxRate   = 3
)

func (m Model) fieldCount() int {
	return fixedFieldCount + itemFieldCount*m.draft.ItemCount()
}

// itemForField maps a field index to its line item and attribute. ok is false
// for the fixed customer/tax fields.
func itemForField(i int) (itemIdx int, field composer.ItemField, ok bool) {
	if i < fixedFieldCount {
		return 0, 0, false
	}
	rel := i - fixedFieldCount
	return rel / itemFieldCount, composer.ItemField(rel % itemFieldCount), true
}

// rebuildInputs recreates the textinput set from the draft. Called after any
// structural change (add/remove item, reset) so input count and values track
// the draft exactly.
func (m *Model) rebuildInputs() {
	inputs := make([]textinput.Model, 0, m.fieldCount())

	inputs = append(inputs,
		newInput("First name", 40, m.draft.Customer.FirstName),
		newInput("Last name", 40, m.draft.Customer.LastName),
		newInput("Phone", 24, m.draft.Customer.Phone),
		newInput("10", 6, m.draft.TaxRate),
	)
	for _, item := range m.draft.Items {
		inputs = append(inputs,
			newInput("1", 5, item.Quantity),
			newInput("Item description", 60, item.Description),
			newInput("0.00", 10, item.UnitPrice),
		)
	}

	m.inputs = inputs
	if m.focusIdx >= len(m.inputs) {
		m.focusIdx = len(m.inputs) - 1
	}
	m.resizeInputs()
}

func newInput(placeholder string, limit int, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func (m *Model) resizeInputs() {
	for i := range m.inputs {
		if _, field, ok := itemForField(i); ok {
			switch field {
			case composer.FieldQuantity:
				m.inputs[i].Width = 4
			case composer.FieldDescription:
				m.inputs[i].Width = 28
			case composer.FieldUnitPrice:
				m.inputs[i].Width = 9
			}
			continue
		}
		if i == fieldTaxRate {
			m.inputs[i].Width = 6
		} else {
			m.inputs[i].Width = 24
		}
	}
}

// focusField moves focus to the given field index, blurring the rest.
func (m *Model) focusField(i int) {
	if len(m.inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	m.focusIdx = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) blurAll() {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
}

// handleComposeKey processes keys while the compose pane has focus. Unhandled
// keys flow into the focused text input and the draft is synced from it.
func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focusIdx == len(m.inputs)-1 {
			m.focusedPane = PaneList
			m.blurAll()
			return m, nil
		}
		m.focusField(m.focusIdx + 1)
		return m, nil

	case "shift+tab":
		if m.focusIdx == 0 {
			m.focusedPane = PaneList
			m.blurAll()
			return m, nil
		}
		m.focusField(m.focusIdx - 1)
		return m, nil

	case "ctrl+a":
		m.draft.AddItem()
		m.rebuildInputs()
		// Jump to the new item's quantity field.
		m.focusField(fixedFieldCount + (m.draft.ItemCount()-1)*itemFieldCount)
		return m, nil

	case "ctrl+x":
		if itemIdx, _, ok := itemForField(m.focusIdx); ok {
			if m.draft.RemoveItem(itemIdx) {
				m.rebuildInputs()
				m.focusField(min(m.focusIdx, len(m.inputs)-1))
			}
		}
		return m, nil

	case "ctrl+s":
		return m.submitDraft()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	m.syncDraftField(m.focusIdx)
	return m, cmd
}

// submitDraft dispatches a create when the draft is complete and no create is
// already in flight. The payload snapshot is built before dispatch; later
// edits cannot change what was submitted.
func (m Model) submitDraft() (tea.Model, tea.Cmd) {
	if m.createPending || !m.draft.CanSubmit() {
		return m, nil
	}
	payload := m.draft.BuildPayload()
	m.message = status.Pendingf("Creating invoice...")
	m.createPending = true
	m.pendingOps++
	return m, tea.Batch(m.createInvoiceCmd(payload), m.spin.Tick)
}

// syncDraftField copies the value of input i into the draft, recomputing the
// affected line total.
func (m *Model) syncDraftField(i int) {
	value := m.inputs[i].Value()
	if itemIdx, field, ok := itemForField(i); ok {
		m.draft.SetItemField(itemIdx, field, value)
		return
	}
	switch i {
	case fieldFirstName:
		m.draft.SetCustomerField(composer.FieldFirstName, value)
	case fieldLastName:
		m.draft.SetCustomerField(composer.FieldLastName, value)
	case fieldPhone:
		m.draft.SetCustomerField(composer.FieldPhone, value)
	case fieldTaxRate:
		m.draft.SetTaxRate(value)
	}
}

// renderCompose renders the invoice form pane.
func (m Model) renderCompose(width, height int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.PaneTitle.Render("Create New Invoice"))
	b.WriteString("\n\n")

	label := styles.MutedText.Width(12)
	b.WriteString(label.Render("First name") + " " + m.inputs[fieldFirstName].View() + "\n")
	b.WriteString(label.Render("Last name") + " " + m.inputs[fieldLastName].View() + "\n")
	b.WriteString(label.Render("Phone") + " " + m.inputs[fieldPhone].View() + "\n")
	b.WriteString(label.Render("Tax (%)") + " " + m.inputs[fieldTaxRate].View() + "\n")

	b.WriteString("\n")
	b.WriteString(styles.PaneTitle.Render("Items"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-5s %-29s %-10s %s", "Qty", "Description", "Price", "Total")))
	b.WriteString("\n")

	for i, item := range m.draft.Items {
		base := fixedFieldCount + i*itemFieldCount
		row := m.inputs[base].View() + " " +
			m.inputs[base+1].View() + " " +
			m.inputs[base+2].View() + " " +
			styles.Text.Render(formatMoney(item.LineTotal))
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("ctrl+a add item"))
	if m.draft.ItemCount() > 1 {
		b.WriteString(styles.FaintText.Render("  •  ctrl+x remove item"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTotals(styles))
	b.WriteString("\n")

	if m.createPending {
		b.WriteString(styles.WarningText.Render(m.spin.View() + "Creating invoice..."))
	} else if m.draft.CanSubmit() {
		b.WriteString(styles.SuccessText.Render("ctrl+s  Create invoice"))
	} else {
		b.WriteString(styles.FaintText.Render("ctrl+s  Create invoice (fill required fields)"))
	}

	pane := styles.Pane
	if m.focusedPane == PaneCompose {
		pane = styles.PaneFocus
	}
	return pane.Width(width).Height(height).Render(b.String())
}

// renderTotals renders the live totals box. Values are derived fresh on every
// frame; nothing here is cached.
func (m Model) renderTotals(styles Styles) string {
	totals := m.draft.Totals()
	rate := m.draft.TaxRateValue()

	rows := []string{
		styles.MutedText.Render("Subtotal:") + " " + styles.Text.Render(formatMoney(totals.Subtotal)),
		styles.MutedText.Render(fmt.Sprintf("Tax (%s%%):", rate.StringFixed(1))) + " " + styles.Text.Render(formatMoney(totals.Tax)),
		styles.MutedText.Render("Total:") + " " + styles.AccentText.Bold(true).Render(formatMoney(totals.Total)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
