package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"listy/internal/di"
	"listy/internal/infrastructure/config"
	"listy/internal/state"
	"listy/tui/style"
)

// pane identifies which panel has keyboard focus
type pane int

const (
	paneSidebar pane = iota
	paneTodos
)

// inputMode identifies what the shared text input is editing
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
	inputGoal
	inputDraft
)

// Model is the TUI state: the reconciliation store and list registry
// drive the two panels, an optional draft session drives the
// generation overlay.
type Model struct {
	container *di.Container
	store     *state.Store
	registry  *state.Registry

	keys         keyMap
	pollInterval time.Duration

	pane         pane
	sidebarIndex int // 0 is the main list, 1..n index into registry lists
	todoIndex    int

	input         textinput.Model
	inputMode     inputMode
	lastInputMode inputMode
	editingID     int

	session    *state.DraftSession
	draftIndex int

	spinner spinner.Model

	// statusErr is the mutation-path error banner, separate from the
	// store's reconciliation error.
	statusErr string

	watcher *config.Watcher // nil when config watching is unavailable

	width  int
	height int
}

// NewModel creates the TUI model
func NewModel(container *di.Container, watcher *config.Watcher) Model {
	style.InitStyles(container.Config)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return Model{
		container:    container,
		store:        container.Store,
		registry:     container.Registry,
		keys:         newKeyMap(container.Config.Keybindings),
		pollInterval: pollInterval(container.Config),
		pane:         paneTodos,
		input:        ti,
		spinner:      sp,
		watcher:      watcher,
	}
}

func pollInterval(cfg *config.Config) time.Duration {
	seconds := cfg.Registry.PollIntervalSeconds
	if seconds <= 0 {
		seconds = 3
	}
	return time.Duration(seconds) * time.Second
}

// pollTickMsg fires the periodic registry refresh
type pollTickMsg time.Time

func (m Model) doPollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// Init starts the first reconciliation, the first registry refresh,
// the poll ticker, and the config watch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.reconcileCmd(),
		m.registryCmd(),
		m.doPollTick(),
		m.spinner.Tick,
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watchConfigCmd())
	}
	return tea.Batch(cmds...)
}

// selectedTodoIndex clamps the todo cursor to the collection bounds
func (m *Model) clampTodoIndex() {
	count := len(m.store.Todos())
	if count == 0 {
		m.todoIndex = 0
	} else if m.todoIndex >= count {
		m.todoIndex = count - 1
	}
	if m.todoIndex < 0 {
		m.todoIndex = 0
	}
}

// clampSidebarIndex keeps the sidebar cursor valid as lists come and go
func (m *Model) clampSidebarIndex() {
	max := len(m.registry.Lists()) // plus the main entry at 0
	if m.sidebarIndex > max {
		m.sidebarIndex = max
	}
	if m.sidebarIndex < 0 {
		m.sidebarIndex = 0
	}
}
