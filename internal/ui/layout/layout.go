// Package layout draws the frame around every card: a header with the card
// title and provider status, the card body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// Below this the shelf grid and the story choices stop fitting.
const (
	MinWidth  = 60
	MinHeight = 20
)

const brand = "✦ Wonder Shelf"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage replaces the whole UI while the terminal is too small.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal is too small\n\nNeed at least %d x %d\n(current %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader puts the brand on the left, the card title centered and the
// provider status on the right. The status turns red when offline.
func RenderHeader(title, status string, offline bool, width int) string {
	statusColor := theme.Secondary
	if offline {
		statusColor = theme.Error
	}
	left := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(brand)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(statusColor).Render(status)

	// Border and padding take two columns on each side.
	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-lw, 1)
	gapR := max(inner-lw-gapL-mw-rw, 1)

	row := left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
	return bar.Width(width).Render(row)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
