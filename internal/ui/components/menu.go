package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/ui/theme"
)

// MenuItem is one action in a Menu. Hotkey, when set, runs the action
// directly without moving the cursor onto it.
type MenuItem struct {
	Label  string
	Hotkey string
	Action func() tea.Cmd
}

// Menu is a vertical action list. The cursor wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor, runs the selected item on enter, or runs the item
// bound to a pressed hotkey.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
		return m, nil
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
		return m, nil
	case "enter":
		return m, m.run(m.Selected)
	}

	for i, item := range m.Items {
		if item.Hotkey != "" && item.Hotkey == key {
			return m, m.run(i)
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) View() string {
	var b strings.Builder
	key := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range m.Items {
		cursor, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			cursor, style = "▸ ", style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString("  " + style.Render(cursor+item.Label))
		if item.Hotkey != "" {
			b.WriteString(key.Render(" (" + item.Hotkey + ")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
