package components

import (
	"strings"

	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Dashboard", Key: 'd', KeyPos: 0},
	{Name: "Responden", Key: 'r', KeyPos: 0},
	{Name: "Pengaturan", Key: 'p', KeyPos: 0},
}

// tabLabel returns the unstyled text of a tab. Inactive tabs bracket their shortcut.
func tabLabel(tab Tab, active bool) (before, key, after string) {
	if active {
		return tab.Name, "", ""
	}
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return tab.Name[:tab.KeyPos], string(tab.Name[tab.KeyPos]), tab.Name[tab.KeyPos+1:]
	}
	return tab.Name, string(tab.Key), ""
}

// TabVisualWidth returns the rendered width of a tab, including its padding.
// Mouse hit-testing depends on this matching RenderTabBar exactly.
func TabVisualWidth(tab Tab, active bool) int {
	before, key, after := tabLabel(tab, active)
	w := lipgloss.Width(before) + lipgloss.Width(after) + 2
	if key != "" {
		w += lipgloss.Width(key) + 2
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		before, key, after := tabLabel(tab, i == activeIdx)
		if i == activeIdx {
			parts[i] = activeStyle.Render(" " + before + " ")
			continue
		}
		parts[i] = inactiveStyle.Render(" "+before) +
			dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
			inactiveStyle.Render(after+" ")
	}

	row := strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
