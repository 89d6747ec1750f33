package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"listy/internal/api"
	"listy/internal/state"
	"listy/tui/style"
)

const sidebarWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentHeight := m.height - 4
	if contentHeight < 5 {
		contentHeight = 5
	}
	mainWidth := m.width - sidebarWidth - 8
	if mainWidth < 30 {
		mainWidth = 30
	}

	sidebar := m.renderSidebar(contentHeight)

	var main string
	if m.session != nil {
		main = m.renderOverlay(mainWidth, contentHeight)
	} else {
		main = m.renderTodos(mainWidth, contentHeight)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp())
}

// renderSidebar renders the list registry panel
func (m Model) renderSidebar(height int) string {
	var rows []string
	rows = append(rows, style.TitleStyle.Render("Lists"))
	rows = append(rows, "")

	selected := m.store.SelectedList()

	mainLabel := "Main List"
	if selected == nil {
		mainLabel = "* " + mainLabel
	}
	rows = append(rows, m.sidebarRow(mainLabel, 0))

	lists := m.registry.Lists()
	if m.registry.Loading() && len(lists) == 0 {
		rows = append(rows, style.CountBadgeStyle.Render(m.spinner.View()+" loading..."))
	} else if len(lists) == 0 {
		rows = append(rows, style.CountBadgeStyle.Render("(no separate lists)"))
	}

	for i, listID := range lists {
		label := state.ListDisplayName(listID)
		if selected != nil && *selected == listID {
			label = "* " + label
		}
		label = fmt.Sprintf("%s %s", label, style.CountBadgeStyle.Render(fmt.Sprintf("(%d)", m.registry.Count(listID))))
		rows = append(rows, m.sidebarRow(label, i+1))
	}

	if err := m.registry.Err(); err != nil {
		rows = append(rows, "", style.ErrorBannerStyle.Render("lists unavailable"))
	}

	content := strings.Join(rows, "\n")
	panel := style.SidebarStyle
	if m.pane == paneSidebar {
		panel = style.FocusedPanelStyle
	}
	return panel.Width(sidebarWidth).Height(height).Render(content)
}

func (m Model) sidebarRow(label string, index int) string {
	if m.pane == paneSidebar && m.sidebarIndex == index {
		return style.SelectedItemStyle.Render(label)
	}
	return style.ItemStyle.Render(label)
}

// renderTodos renders the todo collection panel
func (m Model) renderTodos(width, height int) string {
	var rows []string

	title := style.TitleStyle.Render(m.scopeTitle())
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", m.renderFilterTabs()))
	rows = append(rows, style.CountBadgeStyle.Render(
		fmt.Sprintf("%d pending, %d completed", m.store.PendingCount(), m.store.CompletedCount())))
	rows = append(rows, "")

	switch {
	case m.store.Err() != nil:
		rows = append(rows, style.ErrorBannerStyle.Render("✗ "+m.store.Err().Error()))

	case m.store.Loading() && len(m.store.Todos()) == 0:
		rows = append(rows, style.ItemStyle.Render(m.spinner.View()+" loading..."))

	case len(m.store.Todos()) == 0:
		rows = append(rows, style.CountBadgeStyle.Render("Nothing here. Press 'a' to add a todo."))

	default:
		for i, todo := range m.store.Todos() {
			rows = append(rows, m.renderTodoRow(todo, i))
		}
	}

	if m.statusErr != "" {
		rows = append(rows, "", style.ErrorBannerStyle.Render("✗ "+m.statusErr))
	}

	if m.inputMode == inputAdd || m.inputMode == inputEdit {
		rows = append(rows, "", m.input.View())
	}

	content := strings.Join(rows, "\n")
	panel := style.PanelStyle
	if m.pane == paneTodos {
		panel = style.FocusedPanelStyle
	}
	return panel.Width(width).Height(height).Render(content)
}

func (m Model) renderTodoRow(todo api.Todo, index int) string {
	box := "☐"
	if todo.Done {
		box = "☑"
	}
	line := fmt.Sprintf("%s %s", box, todo.Item)
	if todo.Priority != nil && *todo.Priority != "" {
		line += " " + style.PriorityStyle(*todo.Priority).Render("["+*todo.Priority+"]")
	}

	if m.pane == paneTodos && m.todoIndex == index {
		return style.SelectedItemStyle.Render(line)
	}
	if todo.Done {
		return style.DoneItemStyle.Render(line)
	}
	return style.ItemStyle.Render(line)
}

func (m Model) scopeTitle() string {
	if selected := m.store.SelectedList(); selected != nil {
		return state.ListDisplayName(*selected)
	}
	return "Todos"
}

func (m Model) renderFilterTabs() string {
	var tabs []string
	for _, f := range []state.Filter{state.FilterAll, state.FilterPending, state.FilterCompleted} {
		label := string(f)
		if f == m.store.Filter() {
			tabs = append(tabs, style.FilterActiveStyle.Render(label))
		} else {
			tabs = append(tabs, style.FilterDormantStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

// renderOverlay renders the draft review panel for goal breakdown and
// subtask generation.
func (m Model) renderOverlay(width, height int) string {
	var rows []string

	if m.session.Mode() == state.ModeSubtask {
		rows = append(rows, style.TitleStyle.Render("Generate Subtasks"))
		rows = append(rows, style.CountBadgeStyle.Render("Break down: "+m.session.Input()))
	} else {
		rows = append(rows, style.TitleStyle.Render("AI Task Generator"))
	}
	rows = append(rows, "")

	switch m.session.Phase() {
	case state.PhaseIdle:
		if m.inputMode == inputGoal {
			rows = append(rows, style.ItemStyle.Render("Describe your goal:"), m.input.View())
		} else {
			rows = append(rows, style.CountBadgeStyle.Render("Press 'g' to enter a goal, esc to close."))
		}

	case state.PhaseGenerating:
		rows = append(rows, style.ItemStyle.Render(m.spinner.View()+" Generating..."))

	case state.PhaseDraftsReady:
		rows = append(rows, m.renderDrafts()...)

	case state.PhaseSubmitting:
		rows = append(rows, style.ItemStyle.Render(m.spinner.View()+" Creating tasks..."))
	}

	if err := m.session.Err(); err != nil {
		rows = append(rows, "", style.ErrorBannerStyle.Render("✗ "+err.Error()))
	}

	content := strings.Join(rows, "\n")
	return style.FocusedPanelStyle.Width(width).Height(height).Render(content)
}

func (m Model) renderDrafts() []string {
	drafts := m.session.Drafts()

	if m.session.Atomic() {
		// Zero subtasks from a successful call: the task is judged
		// simple enough to do as-is. Informational, not a failure.
		return []string{style.InfoBannerStyle.Render("This task looks simple enough to complete as-is.")}
	}
	if len(drafts) == 0 {
		return []string{style.CountBadgeStyle.Render("No tasks suggested. Press 'a' to add your own, esc to close.")}
	}

	rows := []string{style.ItemStyle.Render(fmt.Sprintf("Suggested tasks (%d):", len(drafts))), ""}
	for i, draft := range drafts {
		line := draft.Text
		if draft.Priority != "" {
			line = style.PriorityStyle(draft.Priority).Render("["+draft.Priority+"]") + " " + line
		}
		if draft.EstimatedTime != "" {
			line += " " + style.CountBadgeStyle.Render("~"+draft.EstimatedTime)
		}

		if m.inputMode == inputDraft && m.draftIndex == i {
			rows = append(rows, m.input.View())
			continue
		}
		if m.draftIndex == i {
			rows = append(rows, style.SelectedItemStyle.Render(line))
		} else {
			rows = append(rows, style.ItemStyle.Render(line))
		}
	}
	rows = append(rows, "", style.CountBadgeStyle.Render("e edit • d delete • a add • enter create all • esc cancel"))
	return rows
}

// renderHelp renders the key hints at the bottom
func (m Model) renderHelp() string {
	if m.session != nil {
		return style.HelpStyle.Render("enter (create all)  •  e (edit)  •  d (delete)  •  a (add)  •  esc (cancel)")
	}
	help := []string{
		"tab (pane)", "f (filter)", "a (add)", "e (edit)", "enter (toggle/select)",
		"d (delete)", "g (generate)", "s (subtasks)", "r (refresh)", "q (quit)",
	}
	return style.HelpStyle.Render(strings.Join(help, "  •  "))
}
