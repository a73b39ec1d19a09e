package welcome

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

var bannerRows = []string{
	`╦ ╦╔═╗╔╗╔╔╦╗╔═╗╦═╗  ╔═╗╦ ╦╔═╗╦  ╔═╗`,
	`║║║║ ║║║║ ║║║╣ ╠╦╝  ╚═╗╠═╣║╣ ║  ╠╣ `,
	`╚╩╝╚═╝╝╚╝═╩╝╚═╝╩╚═  ╚═╝╩ ╩╚═╝╩═╝╚  `,
}

// One color per row, top to bottom: dusk fading into the stars.
var bannerShades = []color.Color{theme.Primary, theme.Accent, theme.Highlight}

const bannerCompact = "W O N D E R   S H E L F"

// RenderBanner draws the block-letter title, or the spaced-out compact
// title when the terminal is narrower than the art.
func RenderBanner(width int) string {
	if width < lipgloss.Width(bannerRows[0])+4 {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(bannerCompact)
	}
	rows := make([]string, len(bannerRows))
	for i, r := range bannerRows {
		rows[i] = lipgloss.NewStyle().Bold(true).Foreground(bannerShades[i]).Render(r)
	}
	return strings.Join(rows, "\n")
}
