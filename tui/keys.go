package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"listy/internal/infrastructure/config"
)

// keyMap holds the active key bindings, built from config
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPane key.Binding
	Filter   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Generate key.Binding
	Subtasks key.Binding
	Refresh  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func newKeyMap(cfg config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:       binding(cfg.Up, "up"),
		Down:     binding(cfg.Down, "down"),
		NextPane: binding(cfg.NextPane, "switch pane"),
		Filter:   binding(cfg.Filter, "cycle filter"),
		Add:      binding(cfg.Add, "add"),
		Edit:     binding(cfg.Edit, "edit"),
		Toggle:   binding(cfg.Toggle, "toggle"),
		Delete:   binding(cfg.Delete, "delete"),
		Generate: binding(cfg.Generate, "generate tasks"),
		Subtasks: binding(cfg.Subtasks, "subtasks"),
		Refresh:  binding(cfg.Refresh, "refresh"),
		Cancel:   binding(cfg.Cancel, "cancel"),
		Quit:     binding(cfg.Quit, "quit"),
	}
}

func binding(keys []string, help string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding()
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}
