package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jswain/billfold/internal/download"
	"github.com/jswain/billfold/internal/state"
	"github.com/jswain/billfold/internal/store"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type createDoneMsg struct {
	resp store.CreateResponse
	err  error
}

type deleteDoneMsg struct {
	id  int64
	err error
}

type generateDoneMsg struct {
	id   int64
	resp store.GenerateResponse
	err  error
}

type downloadDoneMsg struct {
	filename string
	path     string
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(invoices *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(invoices.Snapshot())
	}
}

// refreshListCmd fetches the list immediately, outside the poller cadence.
// The shared snapshot store absorbs the result so the poller and the UI stay
// on one source of truth.
func (m Model) refreshListCmd() tea.Cmd {
	ctx, client, invoices := m.ctx, m.client, m.invoices
	return func() tea.Msg {
		list, err := client.ListInvoices(ctx)
		invoices.Update(list, err)
		return snapshotMsg(invoices.Snapshot())
	}
}

func (m Model) createInvoiceCmd(payload store.InvoicePayload) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		resp, err := client.CreateInvoice(ctx, payload)
		return createDoneMsg{resp: resp, err: err}
	}
}

func (m Model) deleteInvoiceCmd(id int64) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: client.DeleteInvoice(ctx, id)}
	}
}

func (m Model) generateDocumentCmd(id int64) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		resp, err := client.GenerateDocument(ctx, id)
		return generateDoneMsg{id: id, resp: resp, err: err}
	}
}

func (m Model) downloadCmd(url, filename string) tea.Cmd {
	ctx := m.ctx
	dir := m.config.DownloadDir
	return func() tea.Msg {
		path, err := download.Save(ctx, url, filename, dir)
		return downloadDoneMsg{filename: filename, path: path, err: err}
	}
}
