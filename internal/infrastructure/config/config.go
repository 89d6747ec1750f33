package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"listy/pkg/filesystem"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/listy"

	// EnvAPIURL overrides the configured API origin. It is the only
	// environment variable the client reads.
	EnvAPIURL = "LISTY_API_URL"
)

// Config holds application configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	Registry    RegistryConfig    `yaml:"registry"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// APIConfig holds API server connection settings
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RegistryConfig holds lists-sidebar refresh settings
type RegistryConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Sidebar       PanelStyle     `yaml:"sidebar"`
	Panel         PanelStyle     `yaml:"panel"`
	FocusedPanel  PanelStyle     `yaml:"focused_panel"`
	Title         TextStyle      `yaml:"title"`
	Item          TextStyle      `yaml:"item"`
	SelectedItem  TextStyle      `yaml:"selected_item"`
	DoneItem      TextStyle      `yaml:"done_item"`
	ErrorBanner   TextStyle      `yaml:"error_banner"`
	InfoBanner    TextStyle      `yaml:"info_banner"`
	CountBadge    TextStyle      `yaml:"count_badge"`
	Help          TextStyle      `yaml:"help"`
	Priority      PriorityColors `yaml:"priority"`
	FilterActive  TextStyle      `yaml:"filter_active"`
	FilterDormant TextStyle      `yaml:"filter_dormant"`
}

// PanelStyle represents bordered panel styling
type PanelStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
}

// PriorityColors holds colors for draft priority labels
type PriorityColors struct {
	High    string `yaml:"high"`
	Medium  string `yaml:"medium"`
	Low     string `yaml:"low"`
	Default string `yaml:"default"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up       []string `yaml:"up"`
	Down     []string `yaml:"down"`
	NextPane []string `yaml:"next_pane"`
	Filter   []string `yaml:"filter"`
	Add      []string `yaml:"add"`
	Edit     []string `yaml:"edit"`
	Toggle   []string `yaml:"toggle"`
	Delete   []string `yaml:"delete"`
	Generate []string `yaml:"generate"`
	Subtasks []string `yaml:"subtasks"`
	Refresh  []string `yaml:"refresh"`
	Cancel   []string `yaml:"cancel"`
	Quit     []string `yaml:"quit"`
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
}

// NewLoader creates a config loader rooted at the user's home directory
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewLoaderAt(filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName)), nil
}

// NewLoaderAt creates a config loader for an explicit config path
func NewLoaderAt(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load loads the configuration, creating defaults if the file doesn't
// exist. The API origin env override is applied after parsing.
func (l *Loader) Load() (*Config, error) {
	config, err := l.read()
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvAPIURL); env != "" {
		config.API.BaseURL = env
	}
	return config, nil
}

func (l *Loader) read() (*Config, error) {
	exists, err := filesystem.Exists(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Save persists the configuration to disk. The write is atomic so a
// running watcher never observes a half-written file.
func (l *Loader) Save(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := filesystem.SafeWrite(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config := DefaultConfig()
	if err := l.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 10,
		},
		Registry: RegistryConfig{
			PollIntervalSeconds: 3,
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Sidebar: PanelStyle{
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				Panel: PanelStyle{
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedPanel: PanelStyle{
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				Title: TextStyle{
					Foreground: "99",
					Bold:       true,
				},
				Item: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedItem: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				DoneItem: TextStyle{
					Foreground:        "243",
					PaddingHorizontal: 1,
				},
				ErrorBanner: TextStyle{
					Foreground:        "230",
					Background:        "124",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				InfoBanner: TextStyle{
					Foreground:        "230",
					Background:        "25",
					PaddingHorizontal: 1,
				},
				CountBadge: TextStyle{
					Foreground: "245",
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingVertical:   1,
					PaddingHorizontal: 2,
				},
				Priority: PriorityColors{
					High:    "#FF6B6B",
					Medium:  "#FFE66D",
					Low:     "#95E1D3",
					Default: "#999999",
				},
				FilterActive: TextStyle{
					Foreground: "230",
					Background: "62",
					Bold:       true,
				},
				FilterDormant: TextStyle{
					Foreground: "245",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:       []string{"up", "k"},
			Down:     []string{"down", "j"},
			NextPane: []string{"tab"},
			Filter:   []string{"f"},
			Add:      []string{"a"},
			Edit:     []string{"e"},
			Toggle:   []string{"enter", " "},
			Delete:   []string{"d"},
			Generate: []string{"g"},
			Subtasks: []string{"s"},
			Refresh:  []string{"r"},
			Cancel:   []string{"esc"},
			Quit:     []string{"q", "ctrl+c"},
		},
	}
}
