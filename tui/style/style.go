package style

import (
	"github.com/charmbracelet/lipgloss"

	"listy/internal/infrastructure/config"
)

var (
	SidebarStyle       lipgloss.Style
	PanelStyle         lipgloss.Style
	FocusedPanelStyle  lipgloss.Style
	TitleStyle         lipgloss.Style
	ItemStyle          lipgloss.Style
	SelectedItemStyle  lipgloss.Style
	DoneItemStyle      lipgloss.Style
	ErrorBannerStyle   lipgloss.Style
	InfoBannerStyle    lipgloss.Style
	CountBadgeStyle    lipgloss.Style
	HelpStyle          lipgloss.Style
	FilterActiveStyle  lipgloss.Style
	FilterDormantStyle lipgloss.Style

	priorityColors config.PriorityColors
)

// InitStyles initializes the styles from config. Safe to call again on
// a config reload.
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	SidebarStyle = panelStyle(styles.Sidebar)
	PanelStyle = panelStyle(styles.Panel)
	FocusedPanelStyle = panelStyle(styles.FocusedPanel)

	TitleStyle = textStyle(styles.Title)
	ItemStyle = textStyle(styles.Item)
	SelectedItemStyle = textStyle(styles.SelectedItem)
	DoneItemStyle = textStyle(styles.DoneItem).Strikethrough(true)
	ErrorBannerStyle = textStyle(styles.ErrorBanner)
	InfoBannerStyle = textStyle(styles.InfoBanner)
	CountBadgeStyle = textStyle(styles.CountBadge)
	HelpStyle = textStyle(styles.Help)
	FilterActiveStyle = textStyle(styles.FilterActive).Padding(0, 1)
	FilterDormantStyle = textStyle(styles.FilterDormant).Padding(0, 1)

	priorityColors = styles.Priority
}

// PriorityStyle returns the style for a draft/todo priority label
func PriorityStyle(priority string) lipgloss.Style {
	color := priorityColors.Default
	switch priority {
	case "high":
		color = priorityColors.High
	case "medium":
		color = priorityColors.Medium
	case "low":
		color = priorityColors.Low
	}
	if color == "" {
		color = "7"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(priority == "high")
}

func panelStyle(ps config.PanelStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(ps.PaddingVertical, ps.PaddingHorizontal).
		Border(getBorder(ps.BorderStyle)).
		BorderForeground(lipgloss.Color(ps.BorderColor))
}

func textStyle(ts config.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(ts.PaddingVertical, ts.PaddingHorizontal)
	if ts.Foreground != "" {
		s = s.Foreground(lipgloss.Color(ts.Foreground))
	}
	if ts.Background != "" {
		s = s.Background(lipgloss.Color(ts.Background))
	}
	if ts.Bold {
		s = s.Bold(true)
	}
	if ts.Italic {
		s = s.Italic(true)
	}
	return s
}

func getBorder(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
