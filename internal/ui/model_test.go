package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jswain/billfold/internal/composer"
	"github.com/jswain/billfold/internal/config"
	"github.com/jswain/billfold/internal/state"
	"github.com/jswain/billfold/internal/status"
	"github.com/jswain/billfold/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client, err := store.NewClient("http://127.0.0.1:1/api")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New(Options{
		Client:   client,
		Invoices: &state.Store{},
		Config:   &config.Config{DownloadDir: t.TempDir()},
		Logger:   zerolog.Nop(),
	})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

func TestNew_StartsWithDefaultDraft(t *testing.T) {
	m := newTestModel(t)

	if m.draft.ItemCount() != 1 {
		t.Fatalf("item count = %d, want 1", m.draft.ItemCount())
	}
	if m.draft.TaxRate != composer.DefaultTaxRate {
		t.Fatalf("tax rate = %q, want %q", m.draft.TaxRate, composer.DefaultTaxRate)
	}
	if len(m.inputs) != fixedFieldCount+itemFieldCount {
		t.Fatalf("inputs = %d, want %d", len(m.inputs), fixedFieldCount+itemFieldCount)
	}
	if m.focusIdx != 0 {
		t.Fatalf("focusIdx = %d, want 0", m.focusIdx)
	}
	if m.focusedPane != PaneCompose {
		t.Fatalf("focused pane = %v, want compose", m.focusedPane)
	}
}

func TestTyping_SyncsInputIntoDraft(t *testing.T) {
	m := newTestModel(t)

	for _, r := range "Ada" {
		m, _ = update(t, m, keyRune(r))
	}

	if m.draft.Customer.FirstName != "Ada" {
		t.Fatalf("FirstName = %q, want Ada", m.draft.Customer.FirstName)
	}
}

func TestTyping_ItemPriceRecomputesLineTotal(t *testing.T) {
	m := newTestModel(t)

	priceField := fixedFieldCount + int(composer.FieldUnitPrice)
	m.focusField(priceField)
	for _, r := range "5.00" {
		m, _ = update(t, m, keyRune(r))
	}

	if got := m.draft.Items[0].LineTotal.StringFixed(2); got != "5.00" {
		t.Fatalf("line total = %s, want 5.00", got)
	}
}

func TestTab_FromLastFieldMovesToListPane(t *testing.T) {
	m := newTestModel(t)
	m.focusField(len(m.inputs) - 1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.focusedPane != PaneList {
		t.Fatalf("focused pane = %v, want list", m.focusedPane)
	}
}

func TestTab_AdvancesFocusWithinForm(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.focusedPane != PaneCompose {
		t.Fatalf("pane changed on mid-form tab")
	}
	if m.focusIdx != 1 {
		t.Fatalf("focusIdx = %d, want 1", m.focusIdx)
	}
}

func TestAddAndRemoveItem_KeepsInputsInSync(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if m.draft.ItemCount() != 2 {
		t.Fatalf("item count = %d, want 2 after ctrl+a", m.draft.ItemCount())
	}
	if len(m.inputs) != fixedFieldCount+2*itemFieldCount {
		t.Fatalf("inputs = %d, want %d", len(m.inputs), fixedFieldCount+2*itemFieldCount)
	}
	// Focus lands on the new item's quantity field.
	if m.focusIdx != fixedFieldCount+itemFieldCount {
		t.Fatalf("focusIdx = %d, want new item quantity", m.focusIdx)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if m.draft.ItemCount() != 1 {
		t.Fatalf("item count = %d, want 1 after ctrl+x", m.draft.ItemCount())
	}
	if len(m.inputs) != fixedFieldCount+itemFieldCount {
		t.Fatalf("inputs = %d, want %d", len(m.inputs), fixedFieldCount+itemFieldCount)
	}
}

func TestRemoveItem_RefusesLastItem(t *testing.T) {
	m := newTestModel(t)
	m.focusField(fixedFieldCount)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	if m.draft.ItemCount() != 1 {
		t.Fatalf("item count = %d, want the last item kept", m.draft.ItemCount())
	}
}

func TestSubmit_IncompleteDraftDispatchesNothing(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd != nil {
		t.Fatalf("ctrl+s on empty draft returned a command")
	}
	if m.createPending {
		t.Fatalf("createPending set without a dispatch")
	}
	if !m.message.IsZero() {
		t.Fatalf("message = %+v, want none", m.message)
	}
}

func completeModelDraft(m *Model) {
	m.draft.SetCustomerField(composer.FieldFirstName, "Ada")
	m.draft.SetCustomerField(composer.FieldLastName, "Lovelace")
	m.draft.SetCustomerField(composer.FieldPhone, "555-0100")
	m.draft.SetItemField(0, composer.FieldDescription, "Consulting")
	m.draft.SetItemField(0, composer.FieldUnitPrice, "100.00")
	m.rebuildInputs()
}

func TestSubmit_CompleteDraftDispatchesCreate(t *testing.T) {
	m := newTestModel(t)
	completeModelDraft(&m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd == nil {
		t.Fatalf("ctrl+s on complete draft returned no command")
	}
	if !m.createPending {
		t.Fatalf("createPending not set after dispatch")
	}
	if m.message.Kind != status.Pending {
		t.Fatalf("message kind = %v, want pending", m.message.Kind)
	}
}

func TestSubmit_SecondSubmitWhilePendingIsIgnored(t *testing.T) {
	m := newTestModel(t)
	completeModelDraft(&m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd != nil {
		t.Fatalf("second ctrl+s dispatched while a create was pending")
	}
	if m.pendingOps != 1 {
		t.Fatalf("pendingOps = %d, want 1", m.pendingOps)
	}
}

func TestCreateDone_SuccessResetsDraftAndRefreshes(t *testing.T) {
	m := newTestModel(t)
	completeModelDraft(&m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	m, cmd := update(t, m, createDoneMsg{resp: store.CreateResponse{InvoiceID: 7}})

	if m.createPending {
		t.Fatalf("createPending still set after settle")
	}
	if m.message.Kind != status.Success || !strings.Contains(m.message.Text, "7") {
		t.Fatalf("message = %+v, want success mentioning the new ID", m.message)
	}
	if m.draft.Customer.FirstName != "" || m.draft.ItemCount() != 1 {
		t.Fatalf("draft not reset: %+v", m.draft)
	}
	if m.draft.TaxRate != composer.DefaultTaxRate {
		t.Fatalf("tax rate = %q, want default after reset", m.draft.TaxRate)
	}
	if cmd == nil {
		t.Fatalf("no refresh command after successful create")
	}
	if m.focusIdx != 0 {
		t.Fatalf("focusIdx = %d, want 0 after reset", m.focusIdx)
	}
}

func TestCreateDone_FailureKeepsDraft(t *testing.T) {
	m := newTestModel(t)
	completeModelDraft(&m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	m, _ = update(t, m, createDoneMsg{err: errors.New("First name is required")})

	if m.message.Kind != status.Error {
		t.Fatalf("message kind = %v, want error", m.message.Kind)
	}
	if !strings.Contains(m.message.Text, "First name is required") {
		t.Fatalf("message = %q, want the service text verbatim", m.message.Text)
	}
	if m.draft.Customer.FirstName != "Ada" {
		t.Fatalf("draft was cleared on failure")
	}
	if m.createPending {
		t.Fatalf("createPending still set after failure")
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.focusedPane = PaneList
	m.snapshot = state.Snapshot{Invoices: []store.Invoice{{ID: 3, InvoiceID: 3}}}

	m, cmd := update(t, m, keyRune('d'))

	if cmd != nil {
		t.Fatalf("pressing d dispatched a command before confirmation")
	}
	if m.confirmDelete == nil || m.confirmDelete.ID != 3 {
		t.Fatalf("confirmDelete = %+v, want the selected invoice", m.confirmDelete)
	}

	// Cancelling leaves everything untouched.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Fatalf("cancelling the modal dispatched a command")
	}
	if m.confirmDelete != nil {
		t.Fatalf("modal still open after esc")
	}
	if m.pendingOps != 0 {
		t.Fatalf("pendingOps = %d, want 0 after cancel", m.pendingOps)
	}
}

func TestDelete_ConfirmDispatches(t *testing.T) {
	m := newTestModel(t)
	m.focusedPane = PaneList
	m.snapshot = state.Snapshot{Invoices: []store.Invoice{{ID: 3, InvoiceID: 3}}}

	m, _ = update(t, m, keyRune('d'))
	m, cmd := update(t, m, keyRune('y'))

	if cmd == nil {
		t.Fatalf("confirming delete dispatched nothing")
	}
	if m.confirmDelete != nil {
		t.Fatalf("modal still open after confirm")
	}
	if m.message.Kind != status.Pending {
		t.Fatalf("message kind = %v, want pending", m.message.Kind)
	}
}

func TestDelete_WithEmptyListDoesNothing(t *testing.T) {
	m := newTestModel(t)
	m.focusedPane = PaneList

	m, cmd := update(t, m, keyRune('d'))

	if cmd != nil || m.confirmDelete != nil {
		t.Fatalf("d on empty list opened a modal or dispatched")
	}
}

func TestDeleteDone_SettlesMessage(t *testing.T) {
	m := newTestModel(t)
	m.pendingOps = 1

	m, cmd := update(t, m, deleteDoneMsg{id: 3})
	if m.message.Kind != status.Success {
		t.Fatalf("message kind = %v, want success", m.message.Kind)
	}
	if cmd == nil {
		t.Fatalf("no refresh after successful delete")
	}

	m.pendingOps = 1
	m, cmd = update(t, m, deleteDoneMsg{id: 3, err: errors.New("Invoice not found")})
	if m.message.Kind != status.Error || !strings.Contains(m.message.Text, "Invoice not found") {
		t.Fatalf("message = %+v, want error with service text", m.message)
	}
	if cmd != nil {
		t.Fatalf("refresh dispatched after failed delete")
	}
}

func TestGenerateDone_SuccessChainsDownload(t *testing.T) {
	m := newTestModel(t)
	m.pendingOps = 1

	m, cmd := update(t, m, generateDoneMsg{
		id:   3,
		resp: store.GenerateResponse{Filename: "invoice_3.docx", DownloadURL: "/download/invoice_3.docx"},
	})

	if cmd == nil {
		t.Fatalf("no download command after successful generate")
	}
	// The operation is still in flight until the download settles.
	if m.pendingOps != 1 {
		t.Fatalf("pendingOps = %d, want 1 while the download runs", m.pendingOps)
	}
}

func TestGenerateDone_FailureSettles(t *testing.T) {
	m := newTestModel(t)
	m.pendingOps = 1

	m, cmd := update(t, m, generateDoneMsg{id: 3, err: errors.New("boom")})

	if cmd != nil {
		t.Fatalf("command dispatched after failed generate")
	}
	if m.pendingOps != 0 {
		t.Fatalf("pendingOps = %d, want 0", m.pendingOps)
	}
	if m.message.Kind != status.Error || !strings.Contains(m.message.Text, "generating") {
		t.Fatalf("message = %+v, want a generate error", m.message)
	}
}

func TestDownloadDone_SuccessNamesTheFile(t *testing.T) {
	m := newTestModel(t)
	m.pendingOps = 1

	m, _ = update(t, m, downloadDoneMsg{filename: "invoice_3.docx", path: "/tmp/invoice_3.docx"})

	if m.message.Kind != status.Success || !strings.Contains(m.message.Text, "invoice_3.docx") {
		t.Fatalf("message = %+v, want success naming the file", m.message)
	}
	if m.pendingOps != 0 {
		t.Fatalf("pendingOps = %d, want 0", m.pendingOps)
	}
}

func TestStatusSlot_LastWriteWins(t *testing.T) {
	m := newTestModel(t)
	m.pendingOps = 2

	m, _ = update(t, m, deleteDoneMsg{id: 1})
	m, _ = update(t, m, downloadDoneMsg{filename: "a.docx", err: errors.New("disk full")})

	if m.message.Kind != status.Error {
		t.Fatalf("message = %+v, want the later outcome to win", m.message)
	}
}

func TestListNavigation_ClampsToBounds(t *testing.T) {
	m := newTestModel(t)
	m.focusedPane = PaneList
	m.snapshot = state.Snapshot{Invoices: []store.Invoice{{ID: 1}, {ID: 2}}}

	m, _ = update(t, m, keyRune('k'))
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want clamp at 0", m.selectedRow)
	}

	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('j'))
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want clamp at last row", m.selectedRow)
	}

	m, _ = update(t, m, keyRune('g'))
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want 0 after g", m.selectedRow)
	}
	m, _ = update(t, m, keyRune('G'))
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want last after G", m.selectedRow)
	}
}

func TestSnapshotMsg_ClampsSelectionAfterShrink(t *testing.T) {
	m := newTestModel(t)
	m.selectedRow = 5

	m, _ = update(t, m, snapshotMsg(state.Snapshot{Invoices: []store.Invoice{{ID: 1}}}))

	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want clamp into new list", m.selectedRow)
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m := newTestModel(t)
	m.focusedPane = PaneList

	m, _ = update(t, m, keyRune('?'))
	if !m.showHelp {
		t.Fatalf("? did not open help")
	}

	m, _ = update(t, m, keyRune('x'))
	if m.showHelp {
		t.Fatalf("help still open after a key press")
	}
}
