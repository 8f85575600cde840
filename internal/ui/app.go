package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jswain/billfold/internal/composer"
	"github.com/jswain/billfold/internal/config"
	"github.com/jswain/billfold/internal/prefs"
	"github.com/jswain/billfold/internal/state"
	"github.com/jswain/billfold/internal/status"
	"github.com/jswain/billfold/internal/store"
)

// Pane identifies which half of the screen has focus.
type Pane int

const (
	PaneCompose Pane = iota
	PaneList
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *store.Client
	Invoices  *state.Store
	Config    *config.Config
	Logger    zerolog.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *store.Client
	invoices  *state.Store
	config    *config.Config
	logger    zerolog.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	focusedPane Pane
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Compose state
	draft    composer.Draft
	inputs   []textinput.Model
	focusIdx int

	// List state
	snapshot    state.Snapshot
	lastUpdated time.Time
	selectedRow int

	// Pending delete confirmation; nil when no modal is open.
	confirmDelete *store.Invoice

	// Operation outcome slot. One message, last write wins.
	message       status.Message
	spin          spinner.Model
	pendingOps    int
	createPending bool
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}
	// The UI tick only reads snapshots; keep it at most one second so header
	// ages and poller results stay fresh on screen.
	if pollTick > time.Second {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		invoices:    opts.Invoices,
		config:      opts.Config,
		logger:      opts.Logger,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		focusedPane: PaneCompose,
		draft:       composer.NewDraft(),
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.rebuildInputs()
	m.focusField(0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		textinput.Blink,
	}
	if m.invoices != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.invoices))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.invoices != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.invoices))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		if m.pendingOps <= 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case createDoneMsg:
		return m.handleCreateDone(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case generateDoneMsg:
		return m.handleGenerateDone(msg)

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirmDelete != nil {
		return m.renderConfirmDelete()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.confirmDelete != nil {
		return m.handleConfirmKey(msg)
	}

	switch m.focusedPane {
	case PaneCompose:
		return m.handleComposeKey(msg)
	case PaneList:
		return m.handleListKey(msg)
	}
	return m, nil
}

// handleCreateDone settles a create operation. Success resets the draft and
// triggers an immediate list refresh; failure leaves the draft untouched so
// the user can retry without re-entering anything.
func (m Model) handleCreateDone(msg createDoneMsg) (tea.Model, tea.Cmd) {
	m.pendingOps--
	m.createPending = false
	if msg.err != nil {
		m.message = status.Errorf("Error: %s", errorText(msg.err))
		m.logger.Error().Err(msg.err).Msg("create invoice failed")
		return m, nil
	}
	m.message = status.Successf("Invoice created successfully! ID: %d", msg.resp.InvoiceID)
	m.draft.Reset()
	m.rebuildInputs()
	m.focusField(0)
	return m, m.refreshListCmd()
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	m.pendingOps--
	if msg.err != nil {
		m.message = status.Errorf("Error deleting invoice: %s", errorText(msg.err))
		m.logger.Error().Err(msg.err).Int64("id", msg.id).Msg("delete invoice failed")
		return m, nil
	}
	m.message = status.Successf("Invoice deleted successfully")
	return m, m.refreshListCmd()
}

// handleGenerateDone settles the remote half of document generation. The
// local download is a separate effect with its own failure message.
func (m Model) handleGenerateDone(msg generateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.pendingOps--
		m.message = status.Errorf("Error generating document: %s", errorText(msg.err))
		m.logger.Error().Err(msg.err).Int64("id", msg.id).Msg("generate document failed")
		return m, nil
	}
	url := m.client.ResolveDownloadURL(msg.resp.DownloadURL)
	return m, m.downloadCmd(url, msg.resp.Filename)
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	m.pendingOps--
	if msg.err != nil {
		m.message = status.Errorf("Error downloading document: %s", errorText(msg.err))
		m.logger.Error().Err(msg.err).Str("filename", msg.filename).Msg("download failed")
		return m, nil
	}
	m.message = status.Successf("Document generated and downloaded: %s", msg.filename)
	m.logger.Info().Str("path", msg.path).Msg("document downloaded")
	return m, nil
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if err == tea.ErrProgramKilled {
		// Context cancellation is an orderly shutdown, not a failure.
		return nil
	}
	return err
}
