package bigfile

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kio/ccleanplus/internal/core"
	"github.com/kio/ccleanplus/internal/ui"
)

// Remover deletes one path. *core.Deleter satisfies it.
type Remover interface {
	Delete(path string, permanent bool) (core.DeleteResult, error)
}

type phase int

const (
	phaseScanning phase = iota
	phasePicking
	phaseDeleting
)

const progressInterval = 200 * time.Millisecond

// ─── Messages ────────────────────────────────────────────────────────────────

type scanDoneMsg struct {
	files []File
	err   error
}

type progressTickMsg struct{}

type deleteDoneMsg struct {
	removed []string
	missing []string
	freed   int64
	errs    []error
}

// ─── Keys ────────────────────────────────────────────────────────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Sort   key.Binding
	Open   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		None:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Open:   key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
		Delete: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

// PickerConfig configures the picker. When Scanner is set the picker runs
// the scan itself and shows progress; otherwise it starts from Files.
type PickerConfig struct {
	Scanner   *Scanner
	Root      string
	Limit     int
	Files     []File
	Remover   Remover
	Permanent bool
}

// PickerModel is the bubbletea model for reviewing and deleting large files.
type PickerModel struct {
	cfg     PickerConfig
	ctx     context.Context
	cancel  context.CancelFunc
	keys    keyMap
	spinner spinner.Model

	phase   phase
	files   []File
	checked map[string]bool
	sortKey SortKey

	cursor        int
	offset        int
	width         int
	height        int
	confirmDelete bool
	quitting      bool

	scanned int64
	scanErr error
	err     error
	dirs    int64
	deleted int
	missing int
	failed  int
	freed   int64
}

// NewPicker creates a picker bound to ctx; quitting during a scan cancels it.
func NewPicker(ctx context.Context, cfg PickerConfig) PickerModel {
	ctx, cancel := context.WithCancel(ctx)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.TitleStyle()

	m := PickerModel{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		keys:    defaultKeys(),
		spinner: sp,
		checked: make(map[string]bool),
		width:   80,
		height:  24,
		phase:   phasePicking,
		files:   append([]File(nil), cfg.Files...),
	}
	if cfg.Scanner != nil {
		m.phase = phaseScanning
	}
	return m
}

func (m PickerModel) Init() tea.Cmd {
	if m.phase != phaseScanning {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.runScan(), progressTick())
}

func progressTick() tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg { return progressTickMsg{} })
}

func (m PickerModel) runScan() tea.Cmd {
	sc, root, limit, ctx := m.cfg.Scanner, m.cfg.Root, m.cfg.Limit, m.ctx
	return func() tea.Msg {
		files, err := sc.Scan(ctx, root)
		return scanDoneMsg{files: Top(files, limit), err: err}
	}
}

func (m PickerModel) runDelete(files []File) tea.Cmd {
	rm, permanent := m.cfg.Remover, m.cfg.Permanent
	return func() tea.Msg {
		var out deleteDoneMsg
		for _, f := range files {
			res, err := rm.Delete(f.Path, permanent)
			if err != nil {
				out.errs = append(out.errs, err)
				continue
			}
			if res.Outcome == core.OutcomeMissing {
				out.missing = append(out.missing, f.Path)
				continue
			}
			out.removed = append(out.removed, f.Path)
			out.freed += res.Size
		}
		return out
	}
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		if m.phase == phasePicking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressTickMsg:
		if m.phase != phaseScanning {
			return m, nil
		}
		m.scanned, m.dirs = m.cfg.Scanner.Scanned(), m.cfg.Scanner.Dirs()
		return m, progressTick()

	case scanDoneMsg:
		m.files = msg.files
		m.scanned, m.dirs = m.cfg.Scanner.Scanned(), m.cfg.Scanner.Dirs()
		m.scanErr = msg.err
		if m.quitting {
			return m, tea.Quit
		}
		m.phase = phasePicking
		return m, nil

	case deleteDoneMsg:
		m.phase = phasePicking
		m.deleted += len(msg.removed)
		m.missing += len(msg.missing)
		m.failed += len(msg.errs)
		m.freed += msg.freed
		m.err = errors.Join(msg.errs...)
		m.removeFiles(append(msg.removed, msg.missing...))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		if m.phase == phaseScanning {
			// Wait for the scan goroutine to observe cancellation.
			return m, nil
		}
		return m, tea.Quit
	}
	if m.phase != phasePicking {
		return m, nil
	}

	// If awaiting delete confirmation, only Enter confirms.
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "enter" {
			if targets := m.deleteTargets(); len(targets) > 0 {
				m.phase = phaseDeleting
				return m, tea.Batch(m.spinner.Tick, m.runDelete(targets))
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Toggle):
		if f, ok := m.current(); ok {
			m.checked[f.Path] = !m.checked[f.Path]
			if m.cursor < len(m.files)-1 {
				m.cursor++
				m.ensureVisible()
			}
		}
	case key.Matches(msg, m.keys.All):
		for _, f := range m.files {
			m.checked[f.Path] = true
		}
	case key.Matches(msg, m.keys.None):
		m.checked = make(map[string]bool)
	case key.Matches(msg, m.keys.Sort):
		m.sortKey = m.sortKey.Next()
		SortBy(m.files, m.sortKey)
		m.cursor, m.offset = 0, 0
	case key.Matches(msg, m.keys.Open):
		if f, ok := m.current(); ok {
			if err := openInExplorer(f.Path); err != nil {
				m.err = err
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cfg.Remover != nil && len(m.deleteTargets()) > 0 {
			m.confirmDelete = true
		}
	}
	return m, nil
}

// View delegates to picker_view.go renderView.
func (m PickerModel) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m PickerModel) current() (File, bool) {
	if m.cursor < 0 || m.cursor >= len(m.files) {
		return File{}, false
	}
	return m.files[m.cursor], true
}

// deleteTargets returns the checked files, or the file under the cursor
// when nothing is checked.
func (m PickerModel) deleteTargets() []File {
	var out []File
	for _, f := range m.files {
		if m.checked[f.Path] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		if f, ok := m.current(); ok {
			out = append(out, f)
		}
	}
	return out
}

func (m *PickerModel) removeFiles(paths []string) {
	if len(paths) == 0 {
		return
	}
	gone := make(map[string]bool, len(paths))
	for _, p := range paths {
		gone[p] = true
		delete(m.checked, p)
	}
	kept := m.files[:0]
	for _, f := range m.files {
		if !gone[f.Path] {
			kept = append(kept, f)
		}
	}
	m.files = kept
	if m.cursor >= len(m.files) {
		m.cursor = max(len(m.files)-1, 0)
	}
	m.ensureVisible()
}

func (m *PickerModel) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m PickerModel) viewportHeight() int {
	h := m.height - 8 // header (4) + footer (3) + padding
	if h < 1 {
		h = 1
	}
	return h
}

// Result summarises what the picker did, for printing after it exits.
type Result struct {
	Files   []File
	Deleted int
	Missing int
	Failed  int
	Freed   int64
	ScanErr error
}

// Result returns the outcome of the session.
func (m PickerModel) Result() Result {
	return Result{Files: m.files, Deleted: m.deleted, Missing: m.missing, Failed: m.failed, Freed: m.freed, ScanErr: m.scanErr}
}
