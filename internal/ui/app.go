package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pagetrack/internal/auth"
	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/prefs"
	"github.com/five82/pagetrack/internal/state"
	"github.com/five82/pagetrack/internal/stats"
)

type screen int

const (
	screenEntry screen = iota
	screenTabs
)

// Tab is one of the two peer screens behind the entry screen.
type Tab int

const (
	TabStatistics Tab = iota
	TabBooks
)

func (t Tab) String() string {
	if t == TabBooks {
		return "Books"
	}
	return "Statistics"
}

func (t Tab) prefName() string {
	if t == TabBooks {
		return prefs.TabBooks
	}
	return prefs.TabStatistics
}

func tabFromPref(name string) Tab {
	if name == prefs.TabBooks {
		return TabBooks
	}
	return TabStatistics
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Gate      auth.Gate
	ZeroPage  stats.ZeroPagePolicy
	ThemeName string
	Tab       string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	gate      auth.Gate
	zeroPage  stats.ZeroPagePolicy
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	screen screen
	entry  entryForm
	tab    Tab

	// Data state
	snapshot    state.Snapshot
	updates     <-chan state.Snapshot
	unsubscribe func()

	// Selection is shared by both tabs so moving between them keeps the book.
	selected int
	ratings  map[string]int

	// Overlays
	modals   []Modal
	showHelp bool
	errorMsg string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	gate := opts.Gate
	if gate == nil {
		gate = auth.NoopGate{}
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		gate:      gate,
		zeroPage:  opts.ZeroPage,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		screen:    screenEntry,
		entry:     newEntryForm(),
		tab:       tabFromPref(opts.Tab),
		ratings:   make(map[string]int),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return fetchSnapshotCmd(m.store)
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
		return m, nil

	case subscribedMsg:
		m.updates = msg.ch
		m.unsubscribe = msg.unsubscribe
		return m.applySnapshot(msg.snapshot), waitForSnapshotCmd(m.updates)

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg)), waitForSnapshotCmd(m.updates)

	case storeResultMsg:
		return m.handleStoreResult(msg)

	case enteredMsg:
		return m.handleEntered(msg)

	case editorSubmitMsg:
		return m.handleEditorSubmit(msg)
	}

	// Cursor blinks and other internal messages go to whatever owns input.
	if n := len(m.modals); n > 0 {
		next, cmd, _ := m.modals[n-1].Update(msg, m.keys)
		m.modals = replaceTop(m.modals, next)
		return m, cmd
	}
	if m.screen == screenEntry {
		var cmd tea.Cmd
		m.entry.inputs[m.entry.focus], cmd = m.entry.inputs[m.entry.focus].Update(msg)
		return m, cmd
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

	if n := len(m.modals); n > 0 {
		return m.modals[n-1].View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.selected = clampSelection(m.selected, len(snap.Books))
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if n := len(m.modals); n > 0 {
		next, cmd, closed := m.modals[n-1].Update(msg, m.keys)
		if closed {
			m.modals = m.modals[:n-1]
		} else {
			m.modals = replaceTop(m.modals, next)
		}
		return m, cmd
	}

	if m.screen == screenEntry {
		return m.handleEntryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		// Two tabs, so forward and backward are the same move.
		return m.switchTab(1 - m.tab)

	case key.Matches(msg, m.keys.ViewStatistics):
		return m.switchTab(TabStatistics)

	case key.Matches(msg, m.keys.ViewBooks):
		return m.switchTab(TabBooks)

	case key.Matches(msg, m.keys.Up):
		m.selected = clampSelection(m.selected-1, len(m.snapshot.Books))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selected = clampSelection(m.selected+1, len(m.snapshot.Books))
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selected = clampSelection(len(m.snapshot.Books)-1, len(m.snapshot.Books))
		return m, nil
	}

	switch m.tab {
	case TabBooks:
		return m.handleBooksKey(msg)
	default:
		return m.handleStatisticsKey(msg)
	}
}

// switchTab focuses t and re-reads storage so the tab shows current data.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.savePrefs()
	return m, reloadCmd(m.ctx, m.store)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Tab: m.tab.prefName()})
}

// selectedBook returns the highlighted book, if any.
func (m Model) selectedBook() (books.Book, bool) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Books) {
		return books.Book{}, false
	}
	return m.snapshot.Books[m.selected], true
}

func (m Model) handleStoreResult(msg storeResultMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.errorMsg = ""
		return m, nil
	}
	if errors.Is(msg.err, books.ErrMissingFields) {
		m.modals = append(m.modals, newAlertModal("Missing fields", "Fill in all fields."))
		return m, nil
	}
	log.Printf("%s failed: %v", msg.op, msg.err)
	m.errorMsg = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
	return m, nil
}

func (m Model) handleEditorSubmit(msg editorSubmitMsg) (tea.Model, tea.Cmd) {
	if err := msg.Fields.Validate(); err != nil {
		m.modals = append(m.modals, newAlertModal("Missing fields", "Fill in all fields."))
		return m, nil
	}
	if n := len(m.modals); n > 0 {
		if _, ok := m.modals[n-1].(editorModal); ok {
			m.modals = m.modals[:n-1]
		}
	}

	store := m.store
	fields := msg.Fields
	if msg.ID == "" {
		return m, storeCmd(m.ctx, "create", func(ctx context.Context) error {
			_, err := store.Create(ctx, fields)
			return err
		})
	}
	id := msg.ID
	return m, storeCmd(m.ctx, "update", func(ctx context.Context) error {
		_, err := store.Update(ctx, id, fields)
		return err
	})
}

// renderMain renders the header, the command bar, and the active tab.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the area below the bars for the current screen.
func (m Model) renderContent() string {
	if m.screen == screenEntry {
		return m.renderEntry()
	}
	switch m.tab {
	case TabBooks:
		return m.renderBooks()
	default:
		return m.renderStatistics()
	}
}

func (m Model) contentHeight() int {
	return max(m.height-2, 0) // header + command bar
}

func clampSelection(i, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func replaceTop(modals []Modal, top Modal) []Modal {
	out := make([]Modal, len(modals))
	copy(out, modals)
	out[len(out)-1] = top
	return out
}

// Messages

type snapshotMsg state.Snapshot

type subscribedMsg struct {
	ch          <-chan state.Snapshot
	unsubscribe func()
	snapshot    state.Snapshot
}

type storeResultMsg struct {
	op  string
	err error
}

// Commands

// fetchSnapshotCmd subscribes to store changes and reports the current snapshot.
func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		ch, unsubscribe := store.Subscribe()
		return subscribedMsg{ch: ch, unsubscribe: unsubscribe, snapshot: store.Snapshot()}
	}
}

func waitForSnapshotCmd(ch <-chan state.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func reloadCmd(ctx context.Context, store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return storeCmd(ctx, "reload", store.Load)
}

func storeCmd(ctx context.Context, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return storeResultMsg{op: op, err: fn(ctx)}
	}
}

// release drops the store subscription. Pending waits see a closed channel.
func (m Model) release() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.release()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

var _ tea.Model = Model{}
