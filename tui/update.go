package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"listy/internal/api"
	"listy/internal/infrastructure/config"
	"listy/internal/state"
	"listy/tui/style"
)

// Messages carrying async results back into the update loop.
type (
	reconcileMsg      state.ReconcileResult
	registryMsg       state.RegistrySnapshot
	mutationMsg       struct{ err error }
	generationMsg     state.GenerationResult
	submitMsg         state.SubmitResult
	configReloadedMsg struct{ cfg *config.Config }
)

// reconcileCmd begins a reconciliation pass and runs its network leg
func (m *Model) reconcileCmd() tea.Cmd {
	rec := m.store.Begin()
	store := m.store
	return func() tea.Msg {
		return reconcileMsg(store.Fetch(context.Background(), rec))
	}
}

// registryCmd asks the registry for a refresh; a coalesced trigger
// yields no command.
func (m *Model) registryCmd() tea.Cmd {
	ref, ok := m.registry.RequestRefresh()
	if !ok {
		return nil
	}
	registry := m.registry
	return func() tea.Msg {
		return registryMsg(registry.Fetch(context.Background(), ref))
	}
}

func (m *Model) createCmd(text string, listID *string) tea.Cmd {
	client := m.container.Client
	return func() tea.Msg {
		_, err := client.Create(context.Background(), text, listID)
		return mutationMsg{err: err}
	}
}

func (m *Model) updateCmd(id int, text string) tea.Cmd {
	client := m.container.Client
	return func() tea.Msg {
		_, err := client.Update(context.Background(), id, api.UpdateTodoRequest{Item: &text})
		return mutationMsg{err: err}
	}
}

func (m *Model) toggleCmd(id int) tea.Cmd {
	client := m.container.Client
	return func() tea.Msg {
		_, err := client.Toggle(context.Background(), id)
		return mutationMsg{err: err}
	}
}

func (m *Model) deleteCmd(id int) tea.Cmd {
	client := m.container.Client
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return mutationMsg{err: err}
	}
}

func (m *Model) generateCmd(g state.Generation) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return generationMsg(session.Generate(context.Background(), g))
	}
}

func (m *Model) submitCmd(sub state.Submission) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return submitMsg(session.Submit(context.Background(), sub))
	}
}

func (m *Model) watchConfigCmd() tea.Cmd {
	watcher := m.watcher
	return func() tea.Msg {
		cfg, ok := <-watcher.Changes()
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		return m, tea.Batch(m.registryCmd(), m.doPollTick())

	case reconcileMsg:
		if m.store.Apply(state.ReconcileResult(msg)) {
			m.clampTodoIndex()
		}
		return m, nil

	case registryMsg:
		followUp := m.registry.Apply(state.RegistrySnapshot(msg))
		m.clampSidebarIndex()
		if followUp {
			return m, m.registryCmd()
		}
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
		} else {
			m.statusErr = ""
		}
		// Every mutation is followed by a full reconciliation pass.
		return m, m.reconcileCmd()

	case generationMsg:
		if m.session != nil {
			m.session.ApplyGenerated(state.GenerationResult(msg))
			m.draftIndex = 0
		}
		return m, nil

	case submitMsg:
		if m.session == nil {
			return m, nil
		}
		if m.session.ApplySubmitted(state.SubmitResult(msg)) {
			// Materialization succeeded: close the overlay and fire
			// the invalidation consumed by the collection view and
			// the registry.
			m.session = nil
			return m, tea.Batch(m.reconcileCmd(), m.registryCmd())
		}
		return m, nil

	case configReloadedMsg:
		m.container.Config = msg.cfg
		style.InitStyles(msg.cfg)
		m.keys = newKeyMap(msg.cfg.Keybindings)
		m.pollInterval = pollInterval(msg.cfg)
		return m, m.watchConfigCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}
	if m.session != nil {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPane):
		if m.pane == paneSidebar {
			m.pane = paneTodos
		} else {
			m.pane = paneSidebar
		}

	case key.Matches(msg, m.keys.Filter):
		m.store.SetFilter(nextFilter(m.store.Filter()))
		return m, m.reconcileCmd()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.reconcileCmd(), m.registryCmd())

	case key.Matches(msg, m.keys.Up):
		if m.pane == paneSidebar {
			m.sidebarIndex--
			m.clampSidebarIndex()
		} else {
			m.todoIndex--
			m.clampTodoIndex()
		}

	case key.Matches(msg, m.keys.Down):
		if m.pane == paneSidebar {
			m.sidebarIndex++
			m.clampSidebarIndex()
		} else {
			m.todoIndex++
			m.clampTodoIndex()
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.pane == paneSidebar {
			m.store.SelectList(m.sidebarSelection())
			m.todoIndex = 0
			return m, m.reconcileCmd()
		}
		if todo := m.selectedTodo(); todo != nil {
			return m, m.toggleCmd(todo.ID)
		}

	case key.Matches(msg, m.keys.Add):
		m.startInput(inputAdd, "", "New todo...")

	case key.Matches(msg, m.keys.Edit):
		if todo := m.selectedTodo(); todo != nil {
			m.editingID = todo.ID
			m.startInput(inputEdit, todo.Item, "")
		}

	case key.Matches(msg, m.keys.Delete):
		if todo := m.selectedTodo(); todo != nil {
			return m, m.deleteCmd(todo.ID)
		}

	case key.Matches(msg, m.keys.Generate):
		m.session = state.NewDraftSession(m.container.Client, m.store.SelectedList())
		m.draftIndex = 0
		m.startInput(inputGoal, "", "e.g. plan a trip, learn Go...")

	case key.Matches(msg, m.keys.Subtasks):
		if todo := m.selectedTodo(); todo != nil {
			m.session = state.NewSubtaskSession(m.container.Client, *todo)
			m.draftIndex = 0
			g, err := m.session.BeginGenerate(todo.Item)
			if err != nil {
				return m, nil
			}
			return m, m.generateCmd(g)
		}

	case key.Matches(msg, m.keys.Cancel):
		m.statusErr = ""
		m.store.ClearErr()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopInput()
		if m.inputModeWasGoal() && m.session != nil && m.session.Phase() == state.PhaseIdle {
			m.session.Cancel()
			m.session = nil
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.commitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	mode := m.inputMode
	m.stopInput()

	switch mode {
	case inputAdd:
		if strings.TrimSpace(text) == "" {
			m.statusErr = "todo text cannot be empty"
			return m, nil
		}
		return m, m.createCmd(text, m.store.SelectedList())

	case inputEdit:
		if strings.TrimSpace(text) == "" {
			m.statusErr = "todo text cannot be empty"
			return m, nil
		}
		return m, m.updateCmd(m.editingID, text)

	case inputGoal:
		if m.session == nil {
			return m, nil
		}
		g, err := m.session.BeginGenerate(text)
		if err != nil {
			// Validation message is surfaced by the session itself.
			m.startInput(inputGoal, text, "")
			return m, nil
		}
		return m, m.generateCmd(g)

	case inputDraft:
		if m.session != nil {
			m.session.EditDraft(m.draftIndex, text)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
		m.session = nil
		return m, nil
	}

	switch m.session.Phase() {
	case state.PhaseIdle:
		if key.Matches(msg, m.keys.Generate) && m.session.Mode() == state.ModeGoal {
			m.startInput(inputGoal, m.session.Input(), "")
		}

	case state.PhaseDraftsReady:
		drafts := m.session.Drafts()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.draftIndex > 0 {
				m.draftIndex--
			}

		case key.Matches(msg, m.keys.Down):
			if m.draftIndex < len(drafts)-1 {
				m.draftIndex++
			}

		case key.Matches(msg, m.keys.Edit):
			if m.draftIndex < len(drafts) {
				m.startInput(inputDraft, drafts[m.draftIndex].Text, "")
			}

		case key.Matches(msg, m.keys.Delete):
			m.session.RemoveDraft(m.draftIndex)
			m.clampDraftIndex()

		case key.Matches(msg, m.keys.Add):
			m.session.AddDraft()
			m.draftIndex = len(m.session.Drafts()) - 1
			m.startInput(inputDraft, "", "Task description...")

		case key.Matches(msg, m.keys.Toggle):
			sub, err := m.session.BeginSubmit()
			if err != nil {
				return m, nil
			}
			return m, m.submitCmd(sub)
		}
	}

	return m, nil
}

// sidebarSelection maps the sidebar cursor to a list selection; index
// zero is the main collection.
func (m *Model) sidebarSelection() *string {
	if m.sidebarIndex == 0 {
		return nil
	}
	lists := m.registry.Lists()
	i := m.sidebarIndex - 1
	if i >= len(lists) {
		return nil
	}
	listID := lists[i]
	return &listID
}

func (m *Model) selectedTodo() *api.Todo {
	todos := m.store.Todos()
	if m.pane != paneTodos || m.todoIndex < 0 || m.todoIndex >= len(todos) {
		return nil
	}
	todo := todos[m.todoIndex]
	return &todo
}

func (m *Model) startInput(mode inputMode, value, placeholder string) {
	m.inputMode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	if placeholder != "" {
		m.input.Placeholder = placeholder
	}
	m.input.Focus()
}

func (m *Model) stopInput() {
	m.lastInputMode = m.inputMode
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.input.Placeholder = ""
}

func (m *Model) inputModeWasGoal() bool {
	return m.lastInputMode == inputGoal
}

func (m *Model) clampDraftIndex() {
	count := len(m.session.Drafts())
	if count == 0 {
		m.draftIndex = 0
	} else if m.draftIndex >= count {
		m.draftIndex = count - 1
	}
}

func nextFilter(f state.Filter) state.Filter {
	switch f {
	case state.FilterAll:
		return state.FilterPending
	case state.FilterPending:
		return state.FilterCompleted
	default:
		return state.FilterAll
	}
}
