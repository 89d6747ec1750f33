package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"listy/internal/infrastructure/config"
	"listy/tui"
	"listy/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI for managing your todos.

The TUI provides a visual, keyboard-driven interface for:
  - Browsing the main collection and named lists
  - Filtering todos by pending/completed state
  - Creating, editing, toggling, and deleting todos
  - AI goal breakdown with draft review before creating tasks
  - AI subtask generation for existing todos

Keyboard shortcuts:
  ↑/k ↓/j  - Move selection
  tab      - Switch between sidebar and todos
  f        - Cycle filter: all, pending, completed
  a        - Add todo
  e        - Edit selected todo
  Enter    - Toggle selected todo / select list
  d        - Delete selected todo
  g        - Generate tasks from a goal
  s        - Generate subtasks for the selected todo
  r        - Refresh
  q/Ctrl+C - Quit

Examples:
  # Launch the TUI
  listy tui

  # Launch the TUI (shorthand - default command)
  listy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize styles from config
		style.InitStyles(cfg)

		// Warn early when the server is down; the TUI still launches
		// and surfaces errors in its own banners.
		if err := container.Client.Health(getContext()); err != nil && !quiet {
			printer.Error("%s is not reachable: %v", container.Client.BaseURL(), err)
		}

		// Watch the config file so style and polling changes apply live
		watcher, err := config.NewWatcher(container.Loader)
		if err != nil {
			if !quiet {
				printer.Info("config watching disabled: %v", err)
			}
			watcher = nil
		} else {
			defer watcher.Close()
		}

		m := tui.NewModel(container, watcher)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
