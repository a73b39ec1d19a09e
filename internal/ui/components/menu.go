package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a grid of items laid out row by row. Columns of 1 gives a plain
// vertical list.
type Menu struct {
	Items    []MenuItem
	Columns  int
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem, columns int) Menu {
	return Menu{Items: items, Columns: max(columns, 1)}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected-m.Columns >= 0 {
			m.Selected -= m.Columns
		}
	case "down", "j":
		if m.Selected+m.Columns < len(m.Items) {
			m.Selected += m.Columns
		}
	case "left", "h":
		if m.Selected%m.Columns > 0 {
			m.Selected--
		}
	case "right", "l":
		if m.Selected%m.Columns < m.Columns-1 && m.Selected+1 < len(m.Items) {
			m.Selected++
		}
	case "enter":
		if item := m.Items[m.Selected]; item.Action != nil {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders the menu with cells of cellWidth.
func (m Menu) View(cellWidth int) string {
	var rows []string
	for start := 0; start < len(m.Items); start += m.Columns {
		end := min(start+m.Columns, len(m.Items))
		var cells []string
		for i := start; i < end; i++ {
			style := lipgloss.NewStyle().Width(cellWidth).Foreground(theme.Text)
			label := "  " + m.Items[i].Label
			if i == m.Selected {
				style = style.Foreground(theme.Primary).Bold(true)
				label = "▸ " + m.Items[i].Label
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
