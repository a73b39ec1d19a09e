package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used by modal screens.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// ModalFrame wraps content in a double-border frame, centered in the given
// dimensions.
func ModalFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ShelfCard renders a card tile. Its border takes the card's start color and
// its title the end color.
func ShelfCard(title, subtitle, from, to string, width int, selected bool) string {
	border := lipgloss.RoundedBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Hex(to))
	subStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if selected {
		subStyle = subStyle.Foreground(theme.Text)
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(theme.Hex(from)).
		Width(width).
		Padding(0, 1).
		Render(titleStyle.Render(title) + "\n" + subStyle.Render(subtitle))
}

// Panel wraps content in a rounded-border card at the given content width.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}
